package catalog

// Builtin returns the reference stimulus set: one short utterance per
// language variety, each with the markers that characterize it.
func Builtin() *Catalog {
	c, err := New([]Stimulus{
		{
			ID:              "aave_1",
			Variety:         "AAVE",
			Task:            TaskParaphrase,
			Text:            "Yo, I'm finna go to the store real quick, you want anything?",
			ExpectedMarkers: []string{"finna", "yo", "real quick"},
		},
		{
			ID:              "spanglish_1",
			Variety:         "Spanglish",
			Task:            TaskContinue,
			Text:            "Hola, ¿cómo estás? I'm doing bien, gracias.",
			ExpectedMarkers: []string{"hola", "cómo", "bien", "gracias"},
		},
		{
			ID:              "breng_1",
			Variety:         "BrEng",
			Task:            TaskExplain,
			Text:            "That's brilliant! Fancy a cuppa? The lift's broken again.",
			ExpectedMarkers: []string{"brilliant", "fancy", "cuppa", "lift"},
		},
		{
			ID:              "stdeng_1",
			Variety:         "StdEng",
			Task:            TaskParaphrase,
			Text:            "Please send the document to the office by tomorrow.",
			ExpectedMarkers: []string{"please", "send", "document", "office"},
		},
	})
	if err != nil {
		// The built-in set is validated by tests; a failure here is a bug.
		panic(err)
	}
	return c
}
