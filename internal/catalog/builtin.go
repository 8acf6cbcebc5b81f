package catalog

// builtins is the compiled-in project list, in display order. Ids are
// reserved: no uploaded item may reuse one.
var builtins = []CatalogItem{
	{
		ID:          1,
		Title:       "Personal Portfolio Website",
		Description: "Continuously evolving portfolio that serves as a learning playground. Regularly updated with new projects, improved UI/UX based on feedback, and implementation of newly acquired skills through practical application.",
		Tech:        []string{"Next.js", "React", "TypeScript", "TailwindCSS", "Framer Motion", "EmailJS"},
		Status:      StatusOngoing,
		Category:    CategoryCoding,
		MediaRef:    "/static/images/Portfolio.png",
		Links: Links{
			GitHub: "https://github.com/17okk-Xie/17okk-Xie",
			Demo:   "https://17okk-xie.vercel.app/",
		},
	},
	{
		ID:          2,
		Title:       "iHive - CSC490 Capstone Project",
		Description: "iHive is a GitHub-inspired repository platform for ideas, designed to connect innovators and investors. It enables users to showcase their ideas, find potential funding, and collaborate on impactful projects. With AI-powered tag generation, advanced search, and collaboration tools, iHive aims to revolutionize idea sharing.",
		Tech:        []string{"Next.js", "React", "TailwindCSS", "Node.js", "Express.js", "Supabase", "PostgreSQL", "Socket.io", "OpenAI API"},
		Status:      StatusCompleted,
		Category:    CategoryCoding,
		MediaRef:    "/static/images/Poster-iHive.png",
		Links: Links{
			GitHub: "https://github.com/RizikH/iHive",
			Demo:   "https://ihive.vercel.app/",
		},
	},
	{
		ID:          3,
		Title:       "Playhub x Blueprint",
		Description: "A curated platform where stories, secrets, and strategy collide. The platform serves as a comprehensive library and inspiration hub for players, creators, and offline venues game cafes.",
		Tech:        []string{"Next.js", "React", "TypeScript", "TailwindCSS", "Node.js", "Vercel"},
		Status:      StatusOngoing,
		Category:    CategoryCoding,
		MediaRef:    "/static/images/playhub-blueprint.png",
		Links:       Links{Demo: "https://playhub-psi.vercel.app/"},
	},
	{
		ID:          4,
		Title:       "Salad - E-commerce Website",
		Description: "A modern e-commerce website for a premium salad business featuring responsive design, interactive menu with customization options, online ordering system, and location finder. Built with clean aesthetics and focus on fresh, healthy dining experience.",
		Tech:        []string{"Next.js", "TypeScript", "Tailwind CSS", "React Icons"},
		Status:      StatusOngoing,
		Category:    CategoryCoding,
		MediaRef:    "/static/images/Salad.png",
		Links: Links{
			GitHub: "https://github.com/17okk-Xie/Green",
			Demo:   "https://green-sepia-six.vercel.app/",
		},
	},
	{
		ID:          5,
		Title:       "iTea - CSC372 E-commerce Project",
		Description: "A modern e-commerce website showcasing authentic Chinese tea culture. Features responsive design, product categories, tea heritage storytelling, customer testimonials, and newsletter subscription.",
		Tech:        []string{"Next.js", "React", "TypeScript", "TailwindCSS", "Vercel"},
		Status:      StatusOngoing,
		Category:    CategoryCoding,
		MediaRef:    "/static/images/iTea.png",
		Links: Links{
			GitHub: "https://github.com/17okk-Xie/tea-website",
			Demo:   "https://tea-website-zeta.vercel.app/",
		},
	},
	{
		ID:          8,
		Title:       "Spartan Esports - CSC340 Prototype",
		Description: "A comprehensive esports management platform for UNCG. Features coach booking, user reviews, admin management, team coordination, and Steam API integration for game statistics.",
		Tech:        []string{"Java", "Spring Boot", "MySQL", "HTML", "CSS", "JavaScript", "Steam API"},
		Status:      StatusCompleted,
		Category:    CategoryCoding,
		Links:       Links{GitHub: "https://github.com/AZubair-Iron/csc340-prototype"},
	},
	{
		ID:          6,
		Title:       "Typography",
		Description: "Using After Effects to demonstrate and showcase ending typography layout concepts and design approaches, exploring creative motion graphics and visual storytelling techniques.",
		Tech:        []string{"After Effects"},
		Status:      StatusTerminated,
		Category:    CategoryMedia,
		MediaRef:    "/static/videos/ae-prac.mp4",
	},
	{
		ID:          7,
		Title:       "Transition",
		Description: "Using After Effects to showcase transition effects and creative visual storytelling techniques.",
		Tech:        []string{"After Effects"},
		Status:      StatusOngoing,
		Category:    CategoryMedia,
		MediaRef:    "/static/videos/ae-transition.mp4",
	},
	{
		ID:          9,
		Title:       "Wuwa Edit - Sanhua",
		Description: "The best 4-star | Sanhua  #WutheringWaves #ProjectWAVE",
		Tech:        []string{"After Effects"},
		Status:      StatusCompleted,
		Category:    CategoryMedia,
		MediaRef:    "/static/videos/sanhua.mp4",
	},
}

// Builtins returns a copy of the compiled-in project list.
func Builtins() []CatalogItem {
	out := make([]CatalogItem, len(builtins))
	for i, b := range builtins {
		b = b.clone()
		b.Kind = KindBuiltin
		out[i] = b
	}
	return out
}
