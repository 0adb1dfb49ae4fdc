// README: Fixed UI strings and system prompts per supported language.
package locale

import "fmt"

type Language string

const (
	Korean  Language = "ko"
	English Language = "en"
)

// Default is the language selected when the client has not picked one.
const Default = Korean

// Texts is the string bundle rendered for one language.
type Texts struct {
	Name                 string
	Title                string
	SidebarTitle         string
	LanguageLabel        string
	UserInputLabel       string
	SendButton           string
	ChatTitle            string
	MapTitle             string
	DestinationsTitle    string
	EmptyMapHint         string
	ClearMapButton       string
	APIError             string
	CompletionError      string
	TurnInProgressNotice string
	SystemPrompt         string
}

var table = map[Language]Texts{
	Korean: {
		Name:                 "한국어",
		Title:                "🌍 여행 챗봇 with 지도",
		SidebarTitle:         "설정",
		LanguageLabel:        "언어 선택",
		UserInputLabel:       "여행 질문을 입력하세요: ",
		SendButton:           "전송",
		ChatTitle:            "💬 채팅",
		MapTitle:             "🗺️ 추천 여행지",
		DestinationsTitle:    "📍 추천된 여행지:",
		EmptyMapHint:         "여행지를 추천받으면 지도에 표시됩니다!",
		ClearMapButton:       "🗑️ 지도 초기화",
		APIError:             "API 키가 설정되지 않았습니다. 환경 변수에 %s를 추가해주세요.",
		CompletionError:      "API 오류: %s",
		TurnInProgressNotice: "이전 질문에 대한 답변을 기다리는 중입니다.",
		SystemPrompt: "당신은 여행에 관한 질문에 답하는 전문 챗봇입니다. " +
			"여행지를 추천할 때는 반드시 다음 형식으로 답변해주세요: " +
			"LOCATION: [도시명, 국가명] " +
			"여행 외의 질문에는 답변하지 마세요. " +
			"정확하지 않은 정보는 만들어내지 마세요. " +
			"여행지 추천, 준비물, 문화, 음식 등에 대해 친절하게 안내해주세요. " +
			"한국어로 답변해 주세요.",
	},
	English: {
		Name:                 "English",
		Title:                "🌍 Travel Chatbot with Map",
		SidebarTitle:         "Settings",
		LanguageLabel:        "Select Language",
		UserInputLabel:       "Enter your travel question: ",
		SendButton:           "Send",
		ChatTitle:            "💬 Chat",
		MapTitle:             "🗺️ Recommended Destinations",
		DestinationsTitle:    "📍 Recommended Destinations:",
		EmptyMapHint:         "Recommended destinations will appear on the map!",
		ClearMapButton:       "🗑️ Clear Map",
		APIError:             "API key not configured. Please set %s in the environment.",
		CompletionError:      "API error: %s",
		TurnInProgressNotice: "Still waiting for the answer to your previous question.",
		SystemPrompt: "You are a professional travel chatbot. " +
			"When recommending destinations, always use this format: " +
			"LOCATION: [City, Country] " +
			"Do not answer questions outside of travel topics. " +
			"Do not make up information you don't know. " +
			"Provide friendly guidance on travel destinations, preparations, culture, food, etc. " +
			"Please respond in English.",
	},
}

var order = []Language{Korean, English}

// Lookup returns the bundle for lang. The selector is closed, so an unknown
// language is a programming error.
func Lookup(lang Language) Texts {
	t, ok := table[lang]
	if !ok {
		panic(fmt.Sprintf("locale: unknown language %q", string(lang)))
	}
	return t
}

// All returns the supported languages in selector order.
func All() []Language {
	out := make([]Language, len(order))
	copy(out, order)
	return out
}

// Parse accepts a language tag ("ko") or its display name ("한국어").
func Parse(v string) (Language, bool) {
	if _, ok := table[Language(v)]; ok {
		return Language(v), true
	}
	for lang, t := range table {
		if t.Name == v {
			return lang, true
		}
	}
	return "", false
}

// ParseOrDefault is Parse falling back to Default for empty or unknown input.
func ParseOrDefault(v string) Language {
	if lang, ok := Parse(v); ok {
		return lang
	}
	return Default
}
