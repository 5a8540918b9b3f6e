// Package chatbot реализует чат поддержки: основной ответ генерирует
// внешняя LLM, при ее недоступности работает запасной словарь по ключевым
// словам.
package chatbot

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/stresswell/stress-backend/pkg/models"
)

// Generator — внешний генератор ответов. nil означает, что доступен только
// запасной словарь.
type Generator interface {
	Generate(ctx context.Context, message string) (string, error)
}

// Bot отвечает на сообщения пользователя
type Bot struct {
	generator Generator
}

// NewBot создает бота. generator может быть nil.
func NewBot(generator Generator) *Bot {
	return &Bot{generator: generator}
}

// fallbackResponses — ответы по ключевым словам. Порядок проверки фиксирован:
// выигрывает первое совпавшее правило.
var fallbackRules = []struct {
	keywords []string
	response string
}{
	{
		keywords: []string{"sleep", "insomnia", "tired"},
		response: "Good sleep is one of the strongest stress reducers. Try a consistent bedtime, no screens an hour before bed, and a cool dark room. Even one well-slept night helps.",
	},
	{
		keywords: []string{"work", "job", "deadline", "boss"},
		response: "Work pressure is a common stress trigger. Try breaking tasks into small steps, taking a short break every 90 minutes, and leaving work at a fixed time when possible.",
	},
	{
		keywords: []string{"anxious", "anxiety", "panic", "worried"},
		response: "When anxiety spikes, try the 4-4-4 breathing technique: inhale for 4 counts, hold for 4, exhale for 4. Grounding yourself in the present moment also helps: name 5 things you can see right now.",
	},
	{
		keywords: []string{"exercise", "workout", "gym"},
		response: "Exercise is excellent for stress relief. Even a 20-minute walk lowers cortisol. The best workout is the one you will actually do regularly.",
	},
	{
		keywords: []string{"food", "eat", "diet", "appetite"},
		response: "Stress and eating are closely linked. Regular meals, plenty of water and limiting sugar spikes help keep your mood stable. Avoid using caffeine as a meal substitute.",
	},
	{
		keywords: []string{"meditat", "breath", "relax", "calm"},
		response: "Meditation does not have to be complicated. Start with 5 minutes of focusing on your breath. Apps with guided sessions are a good way to build the habit.",
	},
	{
		keywords: []string{"sad", "depress", "lonely", "hopeless"},
		response: "I'm sorry you're feeling this way. Talking to someone you trust can make a real difference. If these feelings persist, please consider reaching out to a mental health professional.",
	},
	{
		keywords: []string{"help", "emergency", "crisis"},
		response: "If you are in crisis, please contact a local emergency service or a crisis helpline right away. For everyday stress, check the emergency tips section of the app for step-by-step grounding techniques.",
	},
	{
		keywords: []string{"hello", "hi", "hey"},
		response: "Hello! I'm here to help you manage stress. You can ask me about sleep, work pressure, anxiety, exercise or relaxation techniques.",
	},
	{
		keywords: []string{"thank"},
		response: "You're welcome! Take care of yourself, and come back any time you need support.",
	},
}

const defaultResponse = "I'm here to support you with stress management. You can ask me about sleep, work pressure, anxiety, exercise, nutrition or relaxation techniques."

const listeningPrompt = "I'm listening. Tell me what's on your mind."

// Reply генерирует ответ на сообщение. Ошибка внешнего генератора не
// пробрасывается: пользователь получает запасной ответ с пометкой.
func (b *Bot) Reply(ctx context.Context, message string) *models.ChatResponse {
	message = strings.TrimSpace(message)
	now := time.Now().UTC()

	if message == "" {
		return &models.ChatResponse{Response: listeningPrompt, Timestamp: now}
	}

	if b.generator != nil {
		text, err := b.generator.Generate(ctx, message)
		if err == nil && strings.TrimSpace(text) != "" {
			return &models.ChatResponse{Response: text, Timestamp: now, AIPowered: true}
		}
		if err != nil {
			log.Printf("[WARN] Chat generator failed, using fallback: %v", err)
		}
		return &models.ChatResponse{
			Response:  b.fallback(message),
			Timestamp: now,
			Note:      "AI assistant is temporarily unavailable, responses are limited",
		}
	}

	return &models.ChatResponse{Response: b.fallback(message), Timestamp: now}
}

func (b *Bot) fallback(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range fallbackRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.response
			}
		}
	}
	return defaultResponse
}
