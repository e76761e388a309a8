package main

type Link struct {
	Label string
	URL   string
}

var (
	ProfileName = "Kan"

	ProfileTitle = "Founder DataScienceWorld.Kan"

	AboutMe = `Neque porro quisquam est qui dolorem ipsum quia dolor sit amet, consectetur, adipisci velit...`

	IntroLines = []string{
		"Welcome to Kan's Portfolio",
		"Let's have a conversation",
	}

	SocialLinks = []Link{
		{Label: "LinkedIn", URL: "https://www.linkedin.com/in/khanh-bui020403/"},
		{Label: "GitHub", URL: "https://github.com/khanheric2003"},
		{Label: "YouTube", URL: "https://www.youtube.com/@depressionkid8859"},
	}

	ContactSuccess = "Thank you for your message! I'll get back to you soon."

	ContactFailure = "Sorry, there was an error sending your message. Please try again later."
)
