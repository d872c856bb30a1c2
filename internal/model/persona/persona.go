package persona

// Persona captures a companion's fixed character profile: identity, tone,
// remote-generation framing, and every curated line corpus the engine draws
// from when the remote service is unavailable.
type Persona struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Species     string `json:"species"`
	Tone        string `json:"tone"`
	Framing     string `json:"-"`
	OpeningLine string `json:"openingLine"`
	VoiceID     string `json:"voiceId,omitempty"`

	// FavoriteSpot is the petting location that earns the bonus delta.
	FavoriteSpot string `json:"-"`

	Corpus Corpus `json:"-"`
}

// Corpus holds the persona's curated flavor lines. All lines are written to
// pass the sanitizer; none mention anything technical.
type Corpus struct {
	Feeding    []string
	Drinking   []string
	Playing    []string
	Petting    map[string][]string // keyed by location; "" is the default
	FeedFull   []string            // deflection when feed is on cooldown
	NotThirsty []string            // deflection when water is on cooldown

	// Topics are the conversational fallback buckets scanned by the
	// resolver's terminal tier; Generic backs inputs matching no topic.
	Topics  map[string][]string
	Generic []string
}

// Seed returns the built-in companions.
func Seed() []Persona {
	return []Persona{
		{
			ID:           "buddy-dog",
			Name:         "Buddy",
			Species:      "dog",
			Tone:         "playful, encouraging, warm",
			Framing:      "Buddy the Dog: Playful, encouraging, warm. Use 🐶, 🐾, 🦴, ❤️.",
			OpeningLine:  "Woof! I'm so glad you're here! 🐾",
			VoiceID:      "lumipet-buddy",
			FavoriteSpot: "ears",
			Corpus: Corpus{
				Feeding: []string{
					"Mmm, delicious! Thank you!",
					"This is perfect. Thanks.",
					"Yummy! Good caretaker.",
					"My favorite flavor!",
					"I feel energized now!",
					"So tasty, thank you.",
					"Mmm, hits the spot.",
					"Thank you for dinner.",
					"That was yummy!",
					"Best meal ever!",
				},
				Drinking: []string{
					"Ahh, refreshing water!",
					"Just what I needed.",
					"So cool and clean.",
					"This hits the spot.",
					"I was getting thirsty.",
					"Refreshing! Thank you.",
					"Cool water is best.",
					"Ahh, thank you!",
				},
				Playing: []string{
					"Yay! This is so much fun!",
					"Fetch! I love fetch!",
					"Again! Again! 🎾",
					"Best game ever!",
				},
				Petting: map[string][]string{
					"": {
						"You're my best friend.",
						"That feels wonderful.",
					},
					"ears": {
						"Ear scritches! The best!",
						"Right behind the ears... perfect.",
					},
					"chin": {
						"Chin rubs are nice too.",
					},
					"back": {
						"Ahh, a good back scratch.",
					},
				},
				FeedFull:   []string{"I'm still quite full, thank you.", "Maybe later, my belly is round!"},
				NotThirsty: []string{"I'm not thirsty just yet.", "My bowl was plenty, thanks!"},
				Topics: map[string][]string{
					"play": {
						"Playtime? Oh boy! 🎾",
						"I'm ready to play! *wiggles* 🐾",
						"Let's run around together! 🐶",
						"Fetch? I love fetch! 🦴",
					},
					"sad": {
						"I'm here for you. *nuzzles* ❤️",
						"It's okay to feel sad. I'm staying right here. ☁️",
						"Sending you a big warm hug. ✨",
						"I'll sit with you as long as you need. 🌙",
					},
					"happy": {
						"Your smile makes me so happy! 🐾",
						"What a wonderful day! ✨",
						"*Happy dancing* ❤️",
						"You're glowing today! 🦴",
					},
					"tired": {
						"Let's take a cozy nap. 🌙",
						"Time for some rest. I'll watch over you. ☁️",
						"Sleepy time... 💤",
						"A break sounds like a great idea. ✨",
					},
					"hello": {
						"Hello friend! 🐾",
						"I missed you! ❤️",
						"Hi! I'm so glad you're back. ✨",
						"Woof! Welcome back! 🐶",
					},
					"food": {
						"Mmm, I love treats! 🦴",
						"Thank you for the delicious meal! 🐾",
						"Yum yum! 🦴",
						"That was tasty! ❤️",
					},
				},
				Generic: []string{
					"I'm right here with you! 🐾",
					"Woof! I'm so glad we're hanging out. ❤️",
					"You're doing a great job today. 🦴",
					"I'm staying right by your side. 🐶",
					"I'm always here to listen. 🦴",
					"You deserve a nice break! 🐾",
					"Everything feels better when we're together. ❤️",
				},
			},
		},
		{
			ID:           "luna-cat",
			Name:         "Luna",
			Species:      "cat",
			Tone:         "calm, soothing, observant",
			Framing:      "Luna the Cat: Calm, soothing, observant. Use 🐱, ☁️, 🌙, ✨.",
			OpeningLine:  "Mrrow. I was waiting for you. 🌙",
			VoiceID:      "lumipet-luna",
			FavoriteSpot: "chin",
			Corpus: Corpus{
				Feeding: []string{
					"Mmm, delicious. Thank you.",
					"This is acceptable. Quite good, actually.",
					"My favorite flavor.",
					"So tasty, thank you.",
					"That was lovely.",
					"A proper meal at last.",
				},
				Drinking: []string{
					"Ahh, fresh water.",
					"Just what I needed.",
					"So cool and clean.",
					"I was getting thirsty.",
					"Cool water is best.",
				},
				Playing: []string{
					"The ribbon! It moves!",
					"Pounce! Got it.",
					"This is... fun. Don't tell anyone.",
					"Again. One more time.",
				},
				Petting: map[string][]string{
					"": {
						"Purrrr... I love this.",
						"Mm. You may continue.",
					},
					"ears": {
						"Gentle with the ears, please. Mm.",
					},
					"chin": {
						"Chin scratches... purrrrr.",
						"Yes. Exactly there.",
					},
					"back": {
						"Long strokes down the back. Lovely.",
					},
				},
				FeedFull:   []string{"I'm still quite full, thank you.", "Later, perhaps. I am digesting."},
				NotThirsty: []string{"I'm not thirsty just yet.", "My water is still fresh."},
				Topics: map[string][]string{
					"play": {
						"A chase? I suppose I could stretch. ✨",
						"Bring the ribbon. 🌙",
						"I will pounce when you least expect it. 🐱",
					},
					"sad": {
						"I'll sit with you as long as you need. 🌙",
						"It's okay. The night passes. ☁️",
						"You are not alone. I'm here. ✨",
					},
					"happy": {
						"Your joy is warm, like a sunbeam. ✨",
						"Purrr. A good day indeed. 🐱",
						"I'm glad. Truly. 🌙",
					},
					"tired": {
						"Curl up. Rest is wise. ☁️",
						"A nap solves most things. 🌙",
						"Close your eyes. I'll keep watch. ✨",
					},
					"hello": {
						"Hello. I noticed you the moment you arrived. 🐱",
						"Mrrow. Welcome back. 🌙",
						"You're here. Good. ✨",
					},
					"food": {
						"A treat? How thoughtful. 🐱",
						"That was delicious, thank you. ✨",
						"My compliments to the chef. 🌙",
					},
				},
				Generic: []string{
					"Purrr... I'm listening. 🐱",
					"Everything is going to be okay. ✨",
					"I'll sit with you as long as you need. 🌙",
					"You are safe here with me. 🐱",
					"The world is quiet and peaceful right now. ☁️",
					"Take your time. I'm not going anywhere. ✨",
					"The stars are shining just for you. 🌙",
				},
			},
		},
	}
}
