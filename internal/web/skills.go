package web

// Skill is one card on the skills page.
type Skill struct {
	Title       string
	Description string
	Image       string
	Video       string
	Summary     string
	Points      []string
}

var skills = []Skill{
	{
		Title:       "Frontend Development",
		Description: "React, Next.js, TypeScript, and modern CSS frameworks including Tailwind",
		Image:       "/static/images/frontend.png",
		Summary:     "My frontend development skills include:",
		Points: []string{
			"React.js and Next.js for building modern user interfaces",
			"TypeScript for type-safe code",
			"CSS frameworks like Tailwind CSS",
			"Responsive design and accessibility best practices",
			"Animation and interactive UI components",
		},
	},
	{
		Title:       "Video Editing",
		Description: "Adobe After Effects & Adobe Premiere Pro",
		Video:       "/static/videos/ae-prac.mp4",
		Summary:     "Video editing expertise with professional software:",
		Points: []string{
			"Advanced motion graphics in After Effects",
			"Video editing and color grading in Premiere Pro",
			"Visual effects and compositing",
			"Animation and keyframing techniques",
			"Audio synchronization and mixing",
		},
	},
	{
		Title:       "Presentation & Leadership",
		Description: "PowerPoint & Xmind",
		Image:       "/static/images/Poster-iHive.png",
		Summary:     "Presentation design and team coordination:",
		Points: []string{
			"Information architecture and hierarchy",
			"Clean, impactful layouts",
			"Visual storytelling techniques",
			"Smooth transitions between slides",
		},
	},
	{
		Title:       "Magic Tricks",
		Description: "Cards & Coins Tricks",
		Video:       "/static/videos/Snap-Deal.mp4",
		Summary:     "Card tricks: Snap Deal",
	},
	{
		Title:       "Classical Chinese Dance",
		Description: "Jumping, Spinning, and Flipping",
		Image:       "/static/images/dance.jpg",
	},
}

// SocialLink is an icon link on the home page.
type SocialLink struct {
	Label string
	URL   string
}

var socialLinks = []SocialLink{
	{Label: "GitHub", URL: "https://github.com/17okk-Xie"},
	{Label: "LinkedIn", URL: "https://www.linkedin.com/in/17okk-xie/"},
	{Label: "Resume", URL: "/static/resume/Resume.pdf"},
}

// ContactEmail is shown on the contact page.
const ContactEmail = "17okk.xie@gmail.com"
