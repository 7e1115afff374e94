package model

// Values maps a FieldSpec.Key to the raw form value of one entry. Line fields
// carry the joined text.
type Values map[string]string

// Entries flattens the entries of kind into field values, in record order.
func (d ResumeData) Entries(kind SectionKind) []Values {
	var out []Values
	switch kind {
	case KindSkill:
		for _, s := range d.Skills {
			out = append(out, Values{"name": s.Name, "details": s.Details})
		}
	case KindProject:
		for _, p := range d.Projects {
			out = append(out, Values{"title": p.Title, "date": p.Date, "tech": p.Tech, "desc": JoinLines(p.Desc)})
		}
	case KindEducation:
		for _, e := range d.Education {
			out = append(out, Values{
				"school":    e.School,
				"location":  e.Location,
				"degree":    e.Degree,
				"dates":     e.Dates,
				"grade":     e.Grade,
				"gradeType": e.GradeType,
			})
		}
	case KindAchievement:
		for _, a := range d.Achievements {
			out = append(out, Values{"title": a.Title, "date": a.Date})
		}
	case KindCertification:
		for _, c := range d.Certifications {
			out = append(out, Values{"title": c.Title, "date": c.Date})
		}
	case KindHobby:
		for _, h := range d.Hobbies {
			out = append(out, Values{"title": h.Title})
		}
	case KindExperience:
		for _, e := range d.Experiences {
			out = append(out, Values{"title": e.Title, "startDate": e.StartDate, "endDate": e.EndDate, "desc": JoinLines(e.Desc)})
		}
	}
	return out
}

// Append adds one entry of kind built from field values. Missing keys yield
// empty strings; line fields are split with DescriptionLines.
func (d *ResumeData) Append(kind SectionKind, v Values) {
	switch kind {
	case KindSkill:
		d.Skills = append(d.Skills, Skill{Name: v["name"], Details: v["details"]})
	case KindProject:
		d.Projects = append(d.Projects, Project{
			Title: v["title"],
			Date:  v["date"],
			Tech:  v["tech"],
			Desc:  DescriptionLines(v["desc"]),
		})
	case KindEducation:
		d.Education = append(d.Education, Education{
			School:    v["school"],
			Location:  v["location"],
			Degree:    v["degree"],
			Dates:     v["dates"],
			Grade:     v["grade"],
			GradeType: v["gradeType"],
		})
	case KindAchievement:
		d.Achievements = append(d.Achievements, Achievement{Title: v["title"], Date: v["date"]})
	case KindCertification:
		d.Certifications = append(d.Certifications, Certification{Title: v["title"], Date: v["date"]})
	case KindHobby:
		d.Hobbies = append(d.Hobbies, Hobby{Title: v["title"]})
	case KindExperience:
		d.Experiences = append(d.Experiences, Experience{
			Title:     v["title"],
			StartDate: v["startDate"],
			EndDate:   v["endDate"],
			Desc:      DescriptionLines(v["desc"]),
		})
	}
}
