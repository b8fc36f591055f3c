package folioengine

// SeedDocument returns the hard-coded default content used when neither the
// local cache nor the remote store has a document. Callers get a fresh copy
// on every call.
func SeedDocument() PortfolioData {
	return PortfolioData{
		SiteName: "Sohan's Portfolio",
		Logo:     "Sohan.",
		SEO: SEOConfig{
			MetaTitle:       "Sohan | Full Stack Developer",
			MetaDescription: "Experienced Full Stack Developer building modern web applications.",
			Keywords:        "React, Node.js, TypeScript, Portfolio, Web Development",
			FaviconURL:      "https://picsum.photos/32/32",
		},
		Profile: Profile{
			Name:              "Sohan",
			Designation:       "Senior Full Stack Engineer",
			Bio:               "I craft elegant and high-performance digital experiences with a focus on React, Node.js, and Cloud architectures.",
			AboutMe:           "I am a dedicated professional with a strong background in building scalable digital solutions. My approach combines technical proficiency with a keen eye for design and user experience. Over the years, I've helped numerous clients transform their ideas into functional, beautiful realities.",
			PhotoURL:          "https://picsum.photos/400/400?random=1",
			ResumeURL:         "#",
			Phone:             "+880 1700 000000",
			Email:             "sohan@example.com",
			YearsOfExperience: "5+",
			Socials: []SocialLink{
				{ID: "1", Platform: "GitHub", URL: "https://github.com", IconName: "Github"},
				{ID: "2", Platform: "LinkedIn", URL: "https://linkedin.com", IconName: "Linkedin"},
				{ID: "3", Platform: "Twitter", URL: "https://twitter.com", IconName: "Twitter"},
			},
		},
		Skills: []Skill{
			{ID: "1", Name: "React & Next.js", Percentage: 95},
			{ID: "2", Name: "TypeScript", Percentage: 90},
			{ID: "3", Name: "Node.js", Percentage: 85},
			{ID: "4", Name: "Tailwind CSS", Percentage: 95},
			{ID: "5", Name: "PostgreSQL", Percentage: 80},
		},
		Projects: []Project{
			{
				ID:          "p1",
				Title:       "E-Commerce Platform",
				Description: "A full-featured online store with payment integration and inventory management.",
				Image:       "https://picsum.photos/600/400?random=2",
				Category:    CategoryWeb,
				TechStack:   []string{"Next.js", "Prisma", "Stripe"},
				LiveLink:    "https://example.com",
				Published:   true,
			},
			{
				ID:          "p2",
				Title:       "Task Management App",
				Description: "Real-time collaboration tool for teams with drag and drop kanban boards.",
				Image:       "https://picsum.photos/600/400?random=3",
				Category:    CategoryApp,
				TechStack:   []string{"React", "Firebase", "Tailwind"},
				Published:   true,
			},
		},
		Services: []Service{
			{
				ID:          "s1",
				Title:       "Web Development",
				Description: "Building responsive and scalable websites using the latest technologies.",
				Icon:        "Code",
				Enabled:     true,
			},
			{
				ID:          "s2",
				Title:       "UI/UX Design",
				Description: "Creating intuitive and beautiful user interfaces with modern design patterns.",
				Icon:        "Palette",
				Enabled:     true,
			},
		},
		Experience: []Experience{
			{
				ID:          "e1",
				Company:     "Tech Solutions Inc.",
				Role:        "Senior Developer",
				Period:      "2021 - Present",
				Description: "Leading the frontend team in developing enterprise-level dashboard applications.",
			},
		},
		Education: []Education{
			{
				ID:          "ed1",
				Institution: "State University",
				Degree:      "B.S. Computer Science",
				Period:      "2015 - 2019",
			},
		},
		Testimonials: []Testimonial{
			{
				ID:          "t1",
				ClientName:  "John Doe",
				ClientPhoto: "https://picsum.photos/100/100?random=10",
				Feedback:    "Sohan is an exceptional developer who delivered our project ahead of schedule and with great quality.",
				Published:   true,
			},
		},
		Messages: []Message{},
		Analytics: Analytics{
			TotalViews: 1284,
			ViewHistory: []ViewDay{
				{Name: "Mon", Views: 120},
				{Name: "Tue", Views: 150},
				{Name: "Wed", Views: 240},
				{Name: "Thu", Views: 180},
				{Name: "Fri", Views: 310},
				{Name: "Sat", Views: 420},
				{Name: "Sun", Views: 380},
			},
		},
		AdminCredentials: &AdminCredentials{
			Username: DefaultAdminUsername,
			Password: DefaultAdminPassword,
		},
	}
}
