package service

import (
	"fmt"

	"github.com/stresswell/stress-backend/pkg/models"
)

// Каталог рекомендаций по уровням стресса
var recommendationCatalog = map[string][]models.Recommendation{
	models.StressLevelLow: {
		{Title: "Keep Your Routine", Description: "Your habits are working. Maintain your current sleep and activity schedule.", Icon: "✅"},
		{Title: "Stay Active", Description: "Continue regular exercise to keep stress at bay.", Icon: "🏃"},
		{Title: "Celebrate Progress", Description: "Acknowledge what you are doing well and reward yourself.", Icon: "🎉"},
		{Title: "Help Others", Description: "Supporting friends or family can boost your own well-being.", Icon: "🤝"},
	},
	models.StressLevelMedium: {
		{Title: "Practice Deep Breathing", Description: "Take 5 minutes for slow, deep breaths: inhale for 4 counts, hold for 4, exhale for 4.", Icon: "🧘"},
		{Title: "Take Short Breaks", Description: "Step away from work every 90 minutes, even for a few minutes.", Icon: "⏸️"},
		{Title: "Limit Caffeine", Description: "Cut back on coffee and energy drinks, especially in the afternoon.", Icon: "☕"},
		{Title: "Go for a Walk", Description: "A 20-minute walk outdoors lowers cortisol levels.", Icon: "🚶"},
		{Title: "Improve Sleep Hygiene", Description: "Avoid screens an hour before bed and keep a consistent schedule.", Icon: "😴"},
	},
	models.StressLevelHigh: {
		{Title: "Talk to Someone", Description: "Share how you feel with a friend, family member or professional.", Icon: "💬"},
		{Title: "Try Guided Meditation", Description: "Use a 10-minute guided meditation to calm your nervous system.", Icon: "🧘"},
		{Title: "Reduce Workload", Description: "Postpone non-urgent tasks and delegate where possible.", Icon: "📋"},
		{Title: "Prioritize Sleep", Description: "Aim for 8 hours tonight. Rest is the foundation of recovery.", Icon: "🛌"},
		{Title: "Avoid Stimulants", Description: "Skip caffeine and alcohol until your stress level drops.", Icon: "🚫"},
		{Title: "Consider Professional Help", Description: "If high stress persists, a therapist can help you build coping strategies.", Icon: "🩺"},
	},
}

// Пошаговые действия при остром стрессе
var emergencyTips = []models.EmergencyTip{
	{Step: 1, Title: "Stop and Breathe", Description: "Pause whatever you are doing. Take 5 slow, deep breaths."},
	{Step: 2, Title: "Ground Yourself", Description: "Name 5 things you can see, 4 you can touch, 3 you can hear, 2 you can smell, 1 you can taste."},
	{Step: 3, Title: "Drink Water", Description: "Slowly drink a glass of cool water."},
	{Step: 4, Title: "Relax Your Muscles", Description: "Tense and release each muscle group, starting from your shoulders."},
	{Step: 5, Title: "Step Outside", Description: "If possible, get fresh air and natural light for a few minutes."},
	{Step: 6, Title: "Reach Out", Description: "Call or message someone you trust. You do not have to handle this alone."},
}

// Recommendations возвращает рекомендации для уровня стресса
func (s *WellnessService) Recommendations(level string) (*models.RecommendationsResponse, error) {
	recs, ok := recommendationCatalog[level]
	if !ok {
		return nil, fmt.Errorf("%w: unknown stress level %q", ErrValidation, level)
	}

	return &models.RecommendationsResponse{
		StressLevel:     level,
		Recommendations: recs,
		Count:           len(recs),
	}, nil
}

// EmergencyTips возвращает пошаговые действия при остром стрессе
func (s *WellnessService) EmergencyTips() *models.EmergencyTipsResponse {
	return &models.EmergencyTipsResponse{
		Tips:    emergencyTips,
		Message: "If you feel overwhelmed, work through these steps one at a time.",
	}
}
