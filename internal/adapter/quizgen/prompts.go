package quizgen

import (
	"fmt"

	"hangul-quiz/internal/domain"
)

const fillBlankPrompt = `너의 역할은 한국어 학습자를 위한 문제 생성기이다.
다음 조건에 맞게 JSON 객체를 생성하라

조건:
1. JSON은 세 개의 배열 키를 가져야 한다: "beginner", "intermediate", "advanced".
2. 각 배열에는 문제 객체 %d개씩 포함한다.
3. 각 문제 객체는 다음 형식을 따른다:
   {
     "sentence": "빈칸이 포함된 한국어 문장",
     "answer": "정답",
     "options": ["오답1", "오답2", "오답3"]
   }
4. "sentence"는 반드시 빈칸(____)을 포함해야 한다.
5. "answer"는 빈칸에 들어갈 정답 단어 또는 표현.
6. "options"에는 정답과 관련 있으나 틀린 선택지 3개를 포함한다.
7. "answer"는 반드시 "형용사나 동사" 만 포함되어야 한다.
8. 난이도별 규칙:
   - beginner: 일상적인 기초 한국어, 동사/형용사 중심, 쉬운 어휘.
   - intermediate: 복합 문장, 조사/어미 변형, 일상 대화에서 쓰이는 표현.
   - advanced: 학술/신문/비즈니스 한국어, 추상적 개념, 고급 어휘.

출력 형식:
추가 설명 없이, 오직 JSON만 반환하라.`

const dialoguePrompt = `너의 역할은 한국어 학습자를 위한 대화 문제 생성기이다.
다음 조건에 맞게 JSON 객체를 생성하라

조건:
1. JSON은 세 개의 배열 키를 가져야 한다: "beginner", "intermediate", "advanced".
2. 각 배열에는 문제 객체 %d개씩 포함한다.
3. 각 문제 객체는 다음 형식을 따른다:
   {
     "sentence": "A: 첫 번째 대사\nB: 두 번째 대사",
     "answer": "B의 대사에 이어질 알맞은 응답",
     "options": ["오답1", "오답2", "오답3"]
   }
4. "sentence"는 반드시 두 줄짜리 대화이며, 각 줄은 "A:" 또는 "B:"로 시작한다.
5. "options"에는 상황에 맞지 않는 응답 3개를 포함하고, 정답과 겹치지 않아야 한다.
6. 난이도별 규칙:
   - beginner: 인사, 쇼핑, 음식 주문 같은 일상 대화.
   - intermediate: 약속, 부탁, 감정 표현이 들어간 대화.
   - advanced: 회의, 토론, 뉴스 주제에 관한 격식 있는 대화.

출력 형식:
추가 설명 없이, 오직 JSON만 반환하라.`

// BuildPrompt returns the generation prompt for mode. A non-empty custom
// prompt replaces the built-in one.
func BuildPrompt(mode domain.GenerationMode, perLevel int, custom string) string {
	if custom != "" {
		return custom
	}
	if mode == domain.ModeDialogue {
		return fmt.Sprintf(dialoguePrompt, perLevel)
	}
	return fmt.Sprintf(fillBlankPrompt, perLevel)
}
