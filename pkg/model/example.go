package model

// Example returns the built-in record shown when nothing usable is stored.
func Example() ResumeData {
	return ResumeData{
		Personal: Personal{
			Name:     "Alex Griffin",
			Email:    "alex.griffin.dev@example.com",
			Mobile:   "+1 (555) 123-4567",
			LinkedIn: "https://linkedin.com/in/alexgriffindev",
			GitHub:   "https://github.com/alexgriffindev",
			Location: "San Francisco, CA",
		},
		Skills: []Skill{
			{Name: "Languages", Details: "JavaScript, TypeScript, Python, HTML5, CSS3"},
			{Name: "Frameworks/Libraries", Details: "React, Next.js, Node.js, Express, Tailwind CSS"},
			{Name: "Databases", Details: "PostgreSQL, MongoDB, Redis"},
			{Name: "Tools", Details: "Docker, Git, Webpack, Jenkins, AWS"},
			{Name: "Other Skills", Details: "Agile Methodologies, REST APIs, CI/CD, System Design"},
		},
		Hobbies: []Hobby{
			{Title: "Competitive Programming"},
			{Title: "3D Printing"},
			{Title: "Urban Gardening"},
			{Title: "Espresso Brewing"},
		},
		Experiences: []Experience{
			{
				Title:     "Senior Software Engineer at TechCorp Inc.",
				StartDate: "Jan 2023",
				EndDate:   "Present",
				Desc: []string{
					"Led development of microservices architecture serving 1M+ users.",
					"Mentored junior developers and conducted code reviews.",
				},
			},
			{
				Title:     "Software Developer at StartupXYZ",
				StartDate: "Jun 2021",
				EndDate:   "Dec 2022",
				Desc: []string{
					"Built full-stack web applications using React and Node.js.",
					"Implemented CI/CD pipelines reducing deployment time by 60%.",
				},
			},
		},
		Projects: []Project{
			{
				Title: "Zenith - Real-Time Collaboration Platform",
				Date:  "June 2025",
				Tech:  "React, TypeScript, Node.js, WebSockets, PostgreSQL",
				Desc: []string{
					"Developed a web-based platform for team collaboration featuring shared whiteboards.",
					"Implemented WebSocket connections for instant updates and collaborative features.",
				},
			},
		},
		Education: []Education{
			{
				School:    "University of California, Berkeley",
				Location:  "Berkeley, CA",
				Degree:    "B.S. Computer Science",
				Dates:     "2017 - 2021",
				Grade:     "3.8",
				GradeType: GradeTypeCGPA,
			},
		},
		Achievements: []Achievement{
			{Title: "Hackathon Winner - Global Tech 2024", Date: "2024"},
		},
		Certifications: []Certification{
			{Title: "AWS Certified Solutions Architect", Date: "2023"},
		},
	}
}
