package domain

import "time"

// ContactMessage is write-once from the public contact form; the administrator
// gets a read-only listing.
type ContactMessage struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func (c ContactMessage) Item() map[string]any {
	return map[string]any{
		"id":           c.ID,
		"name":         c.Name,
		"email":        c.Email,
		"message":      c.Message,
		"submitted_at": c.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

func ContactFromItem(it map[string]any) ContactMessage {
	submitted, _ := time.Parse(time.RFC3339, str(it["submitted_at"]))
	return ContactMessage{
		ID:          str(it["id"]),
		Name:        str(it["name"]),
		Email:       str(it["email"]),
		Message:     str(it["message"]),
		SubmittedAt: submitted,
	}
}
