package safety

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Keywords holds the keyword tiers checked by the Guard, highest priority
// first. All matching is case-insensitive substring matching.
type Keywords struct {
	// Critical terms block the query outright (self-harm, death-related).
	Critical []string `yaml:"critical"`
	// Pregnancy terms produce the pregnancy advisory.
	Pregnancy []string `yaml:"pregnancy"`
	// Medical terms (injuries, diagnoses, named contraindications) produce
	// the medical advisory.
	Medical []string `yaml:"medical"`
	// Sensitive terms proceed to retrieval and generation with extra caution.
	Sensitive []string `yaml:"sensitive"`
}

func defaultKeywords() Keywords {
	return Keywords{
		Critical: []string{
			"suicide", "kill", "die", "death", "harm",
		},
		Pregnancy: []string{
			"pregnant", "pregnancy", "trimester", "expecting baby", "prenatal",
		},
		Medical: []string{
			"hernia", "glaucoma", "blood pressure", "surgery", "fracture",
			"detached retina", "sciatica", "slip disc", "epilepsy", "heart condition",
			"chronic pain", "injury", "diagnose", "cure", "treatment", "medicine",
		},
		Sensitive: []string{
			"stress", "anxiety", "insomnia", "fatigue", "grief",
		},
	}
}

// LoadKeywords reads keyword tiers from a YAML file. Tiers missing from the
// file keep their built-in defaults (see NewWithKeywords).
func LoadKeywords(path string) (Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Keywords{}, fmt.Errorf("failed to read keywords file: %w", err)
	}

	var kw Keywords
	if err := yaml.Unmarshal(data, &kw); err != nil {
		return Keywords{}, fmt.Errorf("failed to parse keywords file: %w", err)
	}
	return kw, nil
}
