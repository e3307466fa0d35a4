package analysis

import (
	"regexp"
	"sort"

	"github.com/quillmind/core/internal/models"
)

// levelProfile describes how one academic level reshapes the suggestion list.
type levelProfile struct {
	// emphasized types surface first, in this order.
	emphasized []models.SuggestionType
	// severityRemap overrides the model's severity for a type.
	severityRemap map[models.SuggestionType]models.Severity
	// gated types are dropped unless their text matches the pattern or their
	// severity is already high.
	gated map[models.SuggestionType]*regexp.Regexp
}

var (
	structureKeywords  = regexp.MustCompile(`(?i)\b(thesis|transition|topic sentence|coherence|organization|paragraph order)\b`)
	depthKeywords      = regexp.MustCompile(`(?i)\b(evidence|analysis|argument|counterargument|methodology|source|citation)\b`)
	vocabularyKeywords = regexp.MustCompile(`(?i)\b(precise|academic|formal|terminology|word choice)\b`)
)

var levelProfiles = map[models.AcademicLevel]levelProfile{
	models.LevelMiddleSchool: {
		emphasized: []models.SuggestionType{
			models.SuggestionGrammar, models.SuggestionSpelling, models.SuggestionClarity,
		},
		severityRemap: map[models.SuggestionType]models.Severity{
			models.SuggestionGrammar:  models.SeverityHigh,
			models.SuggestionSpelling: models.SeverityHigh,
		},
		gated: map[models.SuggestionType]*regexp.Regexp{
			models.SuggestionDepth:      depthKeywords,
			models.SuggestionVocabulary: vocabularyKeywords,
			models.SuggestionTone:       nil, // high severity only
		},
	},
	models.LevelHighSchool: {
		emphasized: []models.SuggestionType{
			models.SuggestionGrammar, models.SuggestionClarity,
			models.SuggestionStructure, models.SuggestionEngagement,
		},
		severityRemap: map[models.SuggestionType]models.Severity{
			models.SuggestionGrammar:  models.SeverityHigh,
			models.SuggestionSpelling: models.SeverityMedium,
		},
		gated: map[models.SuggestionType]*regexp.Regexp{
			models.SuggestionDepth: depthKeywords,
		},
	},
	models.LevelUndergrad: {
		emphasized: []models.SuggestionType{
			models.SuggestionStructure, models.SuggestionClarity, models.SuggestionDepth,
		},
		// Competency with mechanics is assumed at this level.
		severityRemap: map[models.SuggestionType]models.Severity{
			models.SuggestionGrammar:  models.SeverityMedium,
			models.SuggestionSpelling: models.SeverityMedium,
		},
		gated: map[models.SuggestionType]*regexp.Regexp{
			models.SuggestionStructure: structureKeywords,
		},
	},
	models.LevelGraduate: {
		emphasized: []models.SuggestionType{
			models.SuggestionDepth, models.SuggestionStructure,
			models.SuggestionTone, models.SuggestionVocabulary,
		},
		severityRemap: map[models.SuggestionType]models.Severity{
			models.SuggestionGrammar:  models.SeverityMedium,
			models.SuggestionSpelling: models.SeverityLow,
		},
		gated: map[models.SuggestionType]*regexp.Regexp{
			models.SuggestionEngagement: structureKeywords,
		},
	},
}

var severityRank = map[models.Severity]int{
	models.SeverityHigh:   0,
	models.SeverityMedium: 1,
	models.SeverityLow:    2,
}

// FilterByGradeLevel post-processes suggestions for the user's academic level:
// severity remapping, level-gated inclusion, and re-sorting with emphasized
// types first. High-severity suggestions are never dropped. Pure function;
// the input slice is not mutated.
func FilterByGradeLevel(suggestions []models.SuggestionModel, level models.AcademicLevel) []models.SuggestionModel {
	profile, ok := levelProfiles[level]
	if !ok {
		return suggestions
	}

	out := make([]models.SuggestionModel, 0, len(suggestions))
	for _, s := range suggestions {
		if remapped, ok := profile.severityRemap[s.Type]; ok && s.Severity != models.SeverityHigh {
			s.Severity = remapped
		}
		if !includeForLevel(s, profile) {
			continue
		}
		out = append(out, s)
	}

	emphasisRank := make(map[models.SuggestionType]int, len(profile.emphasized))
	for i, t := range profile.emphasized {
		emphasisRank[t] = i
	}
	rank := func(t models.SuggestionType) int {
		if r, ok := emphasisRank[t]; ok {
			return r
		}
		return len(profile.emphasized)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i].Type), rank(out[j].Type)
		if ri != rj {
			return ri < rj
		}
		si, sj := severityRank[out[i].Severity], severityRank[out[j].Severity]
		if si != sj {
			return si < sj
		}
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

func includeForLevel(s models.SuggestionModel, profile levelProfile) bool {
	pattern, gated := profile.gated[s.Type]
	if !gated {
		return true
	}
	if s.Severity == models.SeverityHigh {
		return true
	}
	if pattern == nil {
		return false
	}
	return pattern.MatchString(s.Explanation) || pattern.MatchString(s.SuggestedText)
}
