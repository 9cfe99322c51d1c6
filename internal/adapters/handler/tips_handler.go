package handler

import (
	"math/rand/v2"
	"net/http"
)

// HealthTip is static content for the public landing surface.
type HealthTip struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

var healthTips = []HealthTip{
	{Title: "Stay Hydrated", Content: "Drink at least 7-8 glasses of water daily."},
	{Title: "Eat Balanced Meals", Content: "Include fruits, vegetables, and whole grains."},
	{Title: "Exercise Regularly", Content: "At least 30 minutes of activity daily."},
	{Title: "Get Enough Sleep", Content: "Aim for 7-9 hours of sleep."},
	{Title: "Manage Stress", Content: "Practice meditation or relaxation."},
	{Title: "Limit Junk Food", Content: "Avoid excess sugar and processed foods."},
	{Title: "Maintain Hygiene", Content: "Wash hands regularly to prevent infections."},
	{Title: "Regular Checkups", Content: "Early detection saves lives."},
}

type TipsHandler struct{}

func NewTipsHandler() *TipsHandler { return &TipsHandler{} }

// Tips returns a random sample of four tips.
func (h *TipsHandler) Tips(w http.ResponseWriter, r *http.Request) {
	sample := make([]HealthTip, len(healthTips))
	copy(sample, healthTips)
	rand.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})
	if len(sample) > 4 {
		sample = sample[:4]
	}
	writeJSON(w, http.StatusOK, sample)
}
