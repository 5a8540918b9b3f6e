package pipeline

import (
	"strings"
	"time"
)

// DefaultClockMinutes — значение по умолчанию для нераспознанного или
// отсутствующего времени: 7:00 утра. Одно битое поле времени не должно
// ронять весь запрос на предсказание.
const DefaultClockMinutes = 420

// Допустимые текстовые форматы времени суток
var clockLayouts = []string{
	"3:04 PM",
	"3:04PM",
	"03:04 PM",
	"15:04",
	"15:04:05",
	"3 PM",
	"3PM",
}

// ClockToMinutes переводит строку времени суток в минуты с полуночи [0, 1439].
// Пустая или нераспознанная строка дает DefaultClockMinutes.
func ClockToMinutes(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultClockMinutes
	}

	// time.Parse требует заглавные AM/PM
	normalized := strings.ToUpper(s)

	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.Hour()*60 + t.Minute()
		}
	}

	return DefaultClockMinutes
}
