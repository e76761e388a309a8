package chat

var (
	Greeting = "Hi, I'm Kan!"

	Fallback = "I'm not sure about that. Could you try asking about my age, occupation, or where I'm from?"

	defaultPatterns = []TopicPatterns{
		{Topic: TopicIntroduction, Examples: []string{
			"who are you",
			"what is your name",
			"tell me about yourself",
			"introduce yourself",
			"your background",
		}},
		{Topic: TopicAge, Examples: []string{
			"how old are you",
			"what is your age",
			"whats your age",
			"what age are you",
			"when were you born",
			"your age",
			"birth year",
		}},
		{Topic: TopicLocation, Examples: []string{
			"where are you from",
			"where do you live",
			"which country are you from",
			"what is your nationality",
			"where were you born",
			"your hometown",
			"your country",
		}},
		{Topic: TopicOccupation, Examples: []string{
			"what do you do",
			"what is your job",
			"what is your occupation",
			"what do you work as",
			"your profession",
			"your job",
			"your career",
		}},
		{Topic: TopicGoals, Examples: []string{
			"what is your life goal",
			"what are your goals",
			"what do you want to achieve",
			"your ambitions",
			"your dreams",
			"future plans",
			"life goals",
			"career goals",
		}},
		{Topic: TopicFavorites, Examples: []string{
			"what is your favorite color",
			"whats your favorite food",
			"favorite things",
			"what food do you like",
			"what colors do you like",
			"preferred color",
			"preferred food",
		}},
		{Topic: TopicHobbies, Examples: []string{
			"what do you do in your free time",
			"what are your hobbies",
			"whats your hobby",
			"what do you like doing",
			"free time activities",
			"leisure activities",
			"what do you enjoy",
			"your interests",
		}},
	}

	defaultAnswers = map[Topic]string{
		TopicIntroduction: "I'm Kan, a passionate software developer with a love for creating innovative solutions. I specialize in web development and enjoy tackling complex technical challenges.",
		TopicLocation:     "I'm from Vietnam, specifically from Ho Chi Minh. I moved abroad to pursue my studies and career in technology.",
		TopicOccupation:   "I'm a software developer specializing in full-stack web development and AI. I love creating user-friendly applications and solving complex problems.",
		TopicAge:          "I'm 22 years old, born in 2003. I started my coding journey when I was 18.",
		TopicGoals:        "My life's goal is to create technology that makes a positive impact on people's lives. I aim to build innovative solutions that solve real-world problems and contribute to the tech community.",
		TopicFavorites:    "I love the color blue as it reminds me of the ocean and sky. As for food, I'm a big fan of Thai cuisine, especially Pad Thai and Tom Yum soup",
		TopicHobbies:      "In my free time, I enjoy coding personal projects, contributing to open-source, and learning new technologies. I also love playing basketball and reading tech blogs to stay updated with the latest trends.",
	}

	defaultQuestions = []Question{
		{Text: "Who are you?", Topic: TopicIntroduction},
		{Text: "Where are you from?", Topic: TopicLocation},
		{Text: "What do you do?", Topic: TopicOccupation},
		{Text: "How old are you?", Topic: TopicAge},
		{Text: "What is your life's goals?", Topic: TopicGoals},
		{Text: "What's your favorite color?", Topic: TopicFavorites},
		{Text: "What's your favorite food?", Topic: TopicFavorites},
		{Text: "What do you do in your free time", Topic: TopicHobbies},
		{Text: "What's your hobby?", Topic: TopicHobbies},
	}
)
