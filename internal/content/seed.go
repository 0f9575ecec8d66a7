package content

import "slices"

// Embedded fallback collections, used whenever no remote source is
// configured or a remote fetch fails.

var seedReadings = []Reading{
	{
		ID:             "1",
		Date:           "1971-06-08",
		Category:       Avyakt,
		TitleHindi:     "जीवन के लिए तीन चीजों की आवश्यकता",
		ContentHindi:   "जीवन में मुख्य तीन शक्तियों की आवश्यकता है: 1. निर्णय शक्ति, 2. परखने की शक्ति, 3. सहन शक्ति।",
		ContentEnglish: "Three main powers are needed in life: 1. Power of Judgment, 2. Power of Discernment, 3. Power of Tolerance.",
		AudioURL:       "https://soundcloud.com/brahmakumaris/music-for-meditation-1",
		YouTubeID:      "XO8wew38VM8",
	},
	{
		ID:             "2",
		Date:           "2023-10-24",
		Category:       Sakar,
		TitleHindi:     "मीठे बच्चे - विदेही बनने का अभ्यास करो",
		ContentHindi:   "मीठे बच्चे, तुम्हें अब विदेही बनने का अभ्यास करना है। अपने को आत्मा समझ बाप को याद करो।",
		ContentEnglish: "Sweet children, you now have to practice becoming bodiless. Consider yourself a soul and remember the Father.",
		YouTubeID:      "P_6vDLq6jGM",
	},
	{
		ID:             "3",
		Date:           "1993-01-18",
		Category:       Avyakt,
		TitleHindi:     "तपस्या का वर्ष",
		ContentHindi:   "तपस्या अर्थात एक बाप दूसरा न कोई। दृढ़ता ही सफलता की चाबी है।",
		ContentEnglish: "Tapasya means One Father and no one else. Determination is the key to success.",
		YouTubeID:      "iWES7Hj52zY",
	},
}

var seedForms = []PracticeForm{
	{
		ID:               "form-1",
		Title:            "Soul Consciousness",
		HindiTitle:       "आत्मिक स्वरूप",
		Description:      "I am a point of light, a peaceful soul, situated in the center of the forehead.",
		DescriptionHindi: "मैं एक चमकता हुआ सितारा, शांत स्वरूप आत्मा, मस्तक के बीच विराजमान हूँ।",
		ColorTheme:       "text-yellow-600",
	},
	{
		ID:               "form-2",
		Title:            "God's Child",
		HindiTitle:       "ईश्वर की संतान",
		Description:      "I am a child of the Supreme Soul, full of purity and divine virtues.",
		DescriptionHindi: "मैं परमपिता परमात्मा की संतान हूँ, पवित्रता और दिव्य गुणों से भरपूर हूँ।",
		ColorTheme:       "text-orange-500",
	},
	{
		ID:               "form-3",
		Title:            "Ancestor Soul",
		HindiTitle:       "पूर्वज आत्मा",
		Description:      "I am an ancestor soul, a root of the world tree, sustaining everyone.",
		DescriptionHindi: "मैं पूर्वज आत्मा हूँ, विश्व रूपी वृक्ष की जड़ हूँ, सभी को शक्ति प्रदान कर रही हूँ।",
		ColorTheme:       "text-red-500",
	},
	{
		ID:               "form-4",
		Title:            "World Server",
		HindiTitle:       "विश्व सेवादारी",
		Description:      "I am a world server, radiating vibrations of peace to the whole globe.",
		DescriptionHindi: "मैं विश्व सेवादारी हूँ, पूरे विश्व को शांति के प्रकंपन दे रही हूँ।",
		ColorTheme:       "text-blue-500",
	},
	{
		ID:               "form-5",
		Title:            "Angel",
		HindiTitle:       "फरिश्ता",
		Description:      "I am a double light angel, detached from the body and loved by God.",
		DescriptionHindi: "मैं डबल लाइट फरिश्ता हूँ, देह से न्यारा और परमात्मा का प्यारा हूँ।",
		ColorTheme:       "text-white drop-shadow-md",
	},
}

var seedDays = []CourseDay{
	{
		Day:             1,
		Title:           "Who am I?",
		TitleHindi:      "मैं कौन हूँ?",
		ThemeHindi:      "मैं कौन हूँ?",
		Resources:       []string{"Soul vs Body", "3 Faculties of Soul (Mind, Intellect, Sanskars)"},
		Reflection:      "Visualize yourself as a sparkling star in the center of the forehead.",
		ReflectionHindi: "स्वयं को मस्तक के बीच चमकते हुए सितारे के रूप में देखें।",
	},
	{
		Day:             2,
		Title:           "Who is God?",
		TitleHindi:      "परमात्मा कौन है?",
		ThemeHindi:      "परमात्मा कौन है?",
		Resources:       []string{"Shiv Baba - The Point of Light", "God's attributes"},
		Reflection:      "Feel the rays of peace coming from the Supreme Soul.",
		ReflectionHindi: "परमात्मा से आती हुई शांति की किरणों को महसूस करें।",
	},
	{
		Day:             3,
		Title:           "Three Worlds",
		TitleHindi:      "तीन लोक",
		ThemeHindi:      "तीन लोक",
		Resources:       []string{"Corporeal, Subtle, Incorporeal World"},
		Reflection:      "Travel with your mind to the Soul World (Paramdham).",
		ReflectionHindi: "अपने मन से परमधाम की यात्रा करें।",
	},
	{
		Day:             4,
		Title:           "The World Cycle",
		TitleHindi:      "सृष्टि चक्र",
		ThemeHindi:      "सृष्टि चक्र",
		Resources:       []string{"Golden, Silver, Copper, Iron Ages", "The Sangam Yug"},
		Reflection:      "Reflect on your journey through the cycle.",
		ReflectionHindi: "सृष्टि चक्र में अपनी यात्रा का चिंतन करें।",
	},
	{
		Day:             5,
		Title:           "Karma Philosophy",
		TitleHindi:      "कर्म दर्शन",
		ThemeHindi:      "कर्म दर्शन",
		Resources:       []string{"Law of Action and Reaction", "Deep philosophy of Karma"},
		Reflection:      "Check your actions today. Are they neutral or elevated?",
		ReflectionHindi: "आज अपने कर्मों की जाँच करें। क्या वे श्रेष्ठ हैं?",
	},
	{
		Day:             6,
		Title:           "Tree of Humanity",
		TitleHindi:      "कल्प वृक्ष",
		ThemeHindi:      "कल्प वृक्ष",
		Resources:       []string{"The roots, trunk, and branches", "Unity in diversity"},
		Reflection:      "Send good wishes to all souls of all religions.",
		ReflectionHindi: "सभी धर्मों की आत्माओं को शुभ भावना भेजें।",
	},
	{
		Day:             7,
		Title:           "Rajyoga Meditation",
		TitleHindi:      "राजयोग विधि",
		ThemeHindi:      "राजयोग विधि",
		Resources:       []string{"Method of Connection", "Practical Application"},
		Reflection:      "Sit in silence and experience the link with the Divine.",
		ReflectionHindi: "शांति में बैठें और परमात्मा से संबंध का अनुभव करें।",
	},
}

// SeedReadings returns a copy of the fallback readings, newest first.
func SeedReadings() []Reading {
	rs := slices.Clone(seedReadings)
	SortReadings(rs)
	return rs
}

// SeedForms returns a copy of the fallback practice forms.
func SeedForms() []PracticeForm {
	return slices.Clone(seedForms)
}

// SeedDays returns a copy of the fallback course days in day order.
func SeedDays() []CourseDay {
	ds := make([]CourseDay, len(seedDays))
	for i, d := range seedDays {
		d.Resources = slices.Clone(d.Resources)
		ds[i] = d
	}
	SortDays(ds)
	return ds
}
