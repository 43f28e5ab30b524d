package content

const aboutMe = `I'm a frontend engineer passionate about creating seamless user experiences
that leverage the power of **AI**. With expertise in modern JavaScript frameworks
and a deep understanding of LLM capabilities, I build applications that are
not just functional, but intelligently intuitive.`

// Default returns the built-in page content. Each call returns a fresh copy.
func Default() *Content {
	return &Content{
		Profile: Profile{
			Name:        "Shyam Raj",
			Initials:    "SR",
			About:       aboutMe,
			Email:       "shyamrajthottunkal@gmail.com",
			LinkedInURL: "https://www.linkedin.com/in/shyam-raj-thottunkal",
			GitHubURL:   "https://github.com",
			ProjectsURL: "https://www.linkedin.com/in/shyam-raj-1997sep/",
			BuiltWith:   "Built with Go, gin & AI",
		},
		Skills: []SkillDescriptor{
			{
				Icon:        "code",
				Title:       "Frontend Engineering",
				Description: "React, TypeScript, Next.js, and modern CSS with a focus on performance and accessibility.",
			},
			{
				Icon:        "brain",
				Title:       "AI Integration",
				Description: "Building practical LLM solutions using APIs like Gemini, GPT, and Claude for real-world applications.",
			},
			{
				Icon:        "zap",
				Title:       "Performance",
				Description: "Optimizing web vitals, lazy loading, and efficient state management for lightning-fast experiences.",
			},
			{
				Icon:        "palette",
				Title:       "Design Systems",
				Description: "Creating scalable, consistent UI component libraries and design tokens for teams.",
			},
		},
		TechStack: []TechTag{
			"React", "TypeScript", "Next.js", "Tailwind CSS", "Node.js",
			"Python", "PostgreSQL", "Supabase", "Gemini API", "OpenAI",
		},
		Projects: []ProjectDescriptor{
			{
				Title:       "AI Content Studio",
				Description: "A full-stack content generation platform powered by LLMs. Features real-time streaming, markdown editing, and smart templates for marketing copy.",
				Tags:        []string{"React", "TypeScript", "Gemini API", "Tailwind"},
				Featured:    true,
				Theme:       "primary-muted",
			},
			{
				Title:       "Smart Dashboard",
				Description: "An analytics dashboard with AI-powered insights. Natural language queries transform into interactive data visualizations.",
				Tags:        []string{"Next.js", "PostgreSQL", "ChatGPT", "Recharts"},
				Theme:       "muted-primary",
			},
			{
				Title:       "Code Review Assistant",
				Description: "Browser extension that provides AI-powered code suggestions and reviews directly in GitHub PRs.",
				Tags:        []string{"TypeScript", "Chrome API", "Gemini", "Webpack"},
				Theme:       "primary-soft",
			},
		},
	}
}
