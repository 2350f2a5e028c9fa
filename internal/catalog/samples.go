package catalog

const sampleCover = "https://images.pexels.com/photos/256559/pexels-photo-256559.jpeg"

var samples = []Book{
	{
		Title:       "The Quantum Mind",
		Author:      "Dr. Sarah Chen",
		Description: "Exploring the intersection of quantum physics and consciousness in modern science.",
		CoverURL:    sampleCover,
		Content: []string{
			"Chapter 1: The Nature of Reality\n\nIn the depths of quantum mechanics, we find ourselves confronting the very nature of reality itself. The observer effect suggests that consciousness plays a fundamental role in the collapse of wave functions, leading us to question whether mind and matter are truly separate entities.\n\nThis chapter explores the foundational principles of quantum physics and their implications for our understanding of consciousness.",
			"Chapter 2: Consciousness and Measurement\n\nThe measurement problem in quantum mechanics has long been one of the most perplexing aspects of the theory. When does a quantum system transition from a superposition of states to a definite outcome?\n\nWe examine the Copenhagen interpretation, the many-worlds theory and consciousness-based interpretations.",
		},
		Tags: []string{"quantum", "physics", "consciousness", "science"},
	},
	{
		Title:       "Digital Renaissance",
		Author:      "Marcus Thompson",
		Description: "How technology is reshaping human creativity and artistic expression in the 21st century.",
		CoverURL:    "https://images.pexels.com/photos/159866/books-book-pages-read-literature-159866.jpeg",
		Content: []string{
			"Chapter 1: The New Canvas\n\nIn an age where pixels replace paintbrushes and algorithms compose symphonies, we stand at the threshold of a digital renaissance. The democratization of creative tools has enabled millions to become artists, writers and musicians.",
			"Chapter 2: AI and Human Creativity\n\nArtificial intelligence is not replacing human creativity, it is amplifying it. This chapter explores how creative professionals integrate AI tools into their workflows while keeping their own perspective.",
		},
		Tags: []string{"technology", "creativity", "art", "AI", "digital"},
	},
	{
		Title:       "Mindful Leadership",
		Author:      "Elena Rodriguez",
		Description: "Ancient wisdom meets modern management in this guide to conscious leadership.",
		CoverURL:    "https://images.pexels.com/photos/1261180/pexels-photo-1261180.jpeg",
		Content: []string{
			"Chapter 1: The Conscious Leader\n\nTrue leadership begins with self-awareness. In a world of constant change, the most effective leaders remain centered, present and responsive rather than reactive.",
			"Chapter 2: Building Authentic Connections\n\nAuthentic leadership is about creating genuine connections with team members, stakeholders and communities. It requires vulnerability, empathy and a commitment to serving others.",
		},
		Tags: []string{"leadership", "mindfulness", "management", "personal growth"},
	},
}

// SeedSamples adds the sample books when the catalog is empty. It returns the
// number of books added.
func (c *Catalog) SeedSamples() (int, error) {
	if len(c.List()) > 0 {
		return 0, nil
	}
	for i, b := range samples {
		b.Content = append([]string(nil), b.Content...)
		b.Tags = append([]string(nil), b.Tags...)
		if _, err := c.Add(b); err != nil {
			return i, err
		}
	}
	return len(samples), nil
}
