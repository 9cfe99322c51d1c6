package domain

type Doctor struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Specialty       string `json:"specialty"`
	YearsExperience int    `json:"years_experience"`
	ImageRef        string `json:"image_ref,omitempty"`
}

func (d Doctor) Item() map[string]any {
	return map[string]any{
		"id":         d.ID,
		"name":       d.Name,
		"specialty":  d.Specialty,
		"experience": d.YearsExperience,
		"image":      d.ImageRef,
	}
}

func DoctorFromItem(it map[string]any) Doctor {
	return Doctor{
		ID:              str(it["id"]),
		Name:            str(it["name"]),
		Specialty:       str(it["specialty"]),
		YearsExperience: intVal(it["experience"]),
		ImageRef:        str(it["image"]),
	}
}
