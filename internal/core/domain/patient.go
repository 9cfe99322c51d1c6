package domain

type Patient struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	PasswordHash    string `json:"-"`
	Name            string `json:"name"`
	DateOfBirth     string `json:"date_of_birth"`
	BloodType       string `json:"blood_type"`
	Allergies       string `json:"allergies"`
	KnownConditions string `json:"known_conditions"`
}

func (p Patient) Item() map[string]any {
	return map[string]any{
		"id":               p.ID,
		"email":            p.Email,
		"password":         p.PasswordHash,
		"name":             p.Name,
		"date_of_birth":    p.DateOfBirth,
		"blood_type":       p.BloodType,
		"allergies":        p.Allergies,
		"known_conditions": p.KnownConditions,
	}
}

func PatientFromItem(it map[string]any) Patient {
	return Patient{
		ID:              str(it["id"]),
		Email:           str(it["email"]),
		PasswordHash:    str(it["password"]),
		Name:            str(it["name"]),
		DateOfBirth:     str(it["date_of_birth"]),
		BloodType:       str(it["blood_type"]),
		Allergies:       str(it["allergies"]),
		KnownConditions: str(it["known_conditions"]),
	}
}
