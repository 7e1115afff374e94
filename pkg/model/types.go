package model

// ResumeData is the aggregate record holding one résumé.
type ResumeData struct {
	Personal       Personal        `json:"personal"`
	Skills         []Skill         `json:"skills"`
	Projects       []Project       `json:"projects"`
	Education      []Education     `json:"education"`
	Achievements   []Achievement   `json:"achievements"`
	Certifications []Certification `json:"certifications"`
	Hobbies        []Hobby         `json:"hobbies"`
	Experiences    []Experience    `json:"experiences"`
}

// Personal holds the contact block. No format is enforced here; inline
// validation is a UI concern.
type Personal struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Location string `json:"location"`
}

type Skill struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

type Project struct {
	Title string   `json:"title"`
	Date  string   `json:"date"`
	Tech  string   `json:"tech"`
	Desc  []string `json:"desc"`
}

// GradeType values understood by the grade display rule.
const (
	GradeTypeCGPA       = "cgpa"
	GradeTypePercentage = "percentage"
)

type Education struct {
	School    string `json:"school"`
	Location  string `json:"location"`
	Degree    string `json:"degree"`
	Dates     string `json:"dates"`
	Grade     string `json:"grade"`
	GradeType string `json:"gradeType"`
}

type Achievement struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

type Certification struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

type Hobby struct {
	Title string `json:"title"`
}

type Experience struct {
	Title     string   `json:"title"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Desc      []string `json:"desc"`
}

// Empty returns the empty-shaped record: every sequence is non-nil so JSON
// snapshots always carry `[]` instead of `null`.
func Empty() ResumeData {
	return ResumeData{
		Skills:         []Skill{},
		Projects:       []Project{},
		Education:      []Education{},
		Achievements:   []Achievement{},
		Certifications: []Certification{},
		Hobbies:        []Hobby{},
		Experiences:    []Experience{},
	}
}

// Normalize replaces nil sequences with empty ones and returns the record.
func (d ResumeData) Normalize() ResumeData {
	if d.Skills == nil {
		d.Skills = []Skill{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Achievements == nil {
		d.Achievements = []Achievement{}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	if d.Hobbies == nil {
		d.Hobbies = []Hobby{}
	}
	if d.Experiences == nil {
		d.Experiences = []Experience{}
	}
	for i := range d.Projects {
		if d.Projects[i].Desc == nil {
			d.Projects[i].Desc = []string{}
		}
	}
	for i := range d.Experiences {
		if d.Experiences[i].Desc == nil {
			d.Experiences[i].Desc = []string{}
		}
	}
	return d
}

// Clone returns a deep copy so callers can mutate the result freely.
func (d ResumeData) Clone() ResumeData {
	out := ResumeData{
		Personal:       d.Personal,
		Skills:         append([]Skill(nil), d.Skills...),
		Education:      append([]Education(nil), d.Education...),
		Achievements:   append([]Achievement(nil), d.Achievements...),
		Certifications: append([]Certification(nil), d.Certifications...),
		Hobbies:        append([]Hobby(nil), d.Hobbies...),
	}
	if d.Projects != nil {
		out.Projects = make([]Project, len(d.Projects))
		for i, p := range d.Projects {
			p.Desc = append([]string(nil), p.Desc...)
			out.Projects[i] = p
		}
	}
	if d.Experiences != nil {
		out.Experiences = make([]Experience, len(d.Experiences))
		for i, e := range d.Experiences {
			e.Desc = append([]string(nil), e.Desc...)
			out.Experiences[i] = e
		}
	}
	return out.Normalize()
}

// Count reports how many entries the record holds for kind.
func (d ResumeData) Count(kind SectionKind) int {
	switch kind {
	case KindSkill:
		return len(d.Skills)
	case KindProject:
		return len(d.Projects)
	case KindEducation:
		return len(d.Education)
	case KindAchievement:
		return len(d.Achievements)
	case KindCertification:
		return len(d.Certifications)
	case KindHobby:
		return len(d.Hobbies)
	case KindExperience:
		return len(d.Experiences)
	default:
		return 0
	}
}

// GradeMaxCGPA bounds a grade while its type is cgpa.
const GradeMaxCGPA = "10"

// GradeMax returns the upper bound for a grade of gradeType: GradeMaxCGPA for
// cgpa (also the default type), empty for anything else.
func GradeMax(gradeType string) string {
	switch gradeType {
	case GradeTypeCGPA, "":
		return GradeMaxCGPA
	default:
		return ""
	}
}
