package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_SubScores_Valid(t *testing.T) {
	doc := `{"skills": 0.9, "experience": 0.7, "location": 1.0, "company": 0.5,
		"strengths": ["Go"], "missing_skills": [], "recommendations": ["apply soon"]}`

	assert.NoError(t, Validate(SubScores, doc))
}

func TestValidate_SubScores_MissingKey(t *testing.T) {
	doc := `{"skills": 0.9, "experience": 0.7, "location": 1.0}`

	err := Validate(SubScores, doc)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.Errors)
}

func TestValidate_SubScores_OutOfRange(t *testing.T) {
	doc := `{"skills": 1.4, "experience": 0.7, "location": 1.0, "company": 0.5}`

	var ve *ValidationError
	require.ErrorAs(t, Validate(SubScores, doc), &ve)
}

func TestValidate_SubScores_WrongType(t *testing.T) {
	doc := `{"skills": "high", "experience": 0.7, "location": 1.0, "company": 0.5}`

	var ve *ValidationError
	require.ErrorAs(t, Validate(SubScores, doc), &ve)
}

func TestValidate_StatusPrediction_Valid(t *testing.T) {
	doc := `{"status": "reviewing", "confidence": 0.6, "reasoning": "typical review window"}`
	assert.NoError(t, Validate(StatusPrediction, doc))
}

func TestValidate_NotJSONAtAll(t *testing.T) {
	err := Validate(SubScores, "sorry, I cannot produce scores")
	require.Error(t, err)
}
