package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmploymentStatus(t *testing.T) {
	cases := map[string]string{
		"Employed":          EmploymentEmployed,
		"  working ":        EmploymentEmployed,
		"Self Employed":     EmploymentSelfEmployed,
		"freelancer":        EmploymentSelfEmployed,
		"STUDENT":           EmploymentStudying,
		"graduate school":   EmploymentStudying,
		"looking for work":  EmploymentUnemployed,
		"":                  EmploymentUnknown,
		"astronaut trainee": EmploymentUnknown,
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeEmploymentStatus(input), "input %q", input)
	}
}

func TestProfileFullName(t *testing.T) {
	p := Profile{FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", p.FullName())
	assert.Equal(t, "Doe", Profile{LastName: "Doe"}.FullName())
	assert.Equal(t, "Jane", Profile{FirstName: "Jane"}.FullName())
}

func TestProfileIsVerified(t *testing.T) {
	var p Profile
	assert.False(t, p.IsVerified())
	f := false
	p.Verified = &f
	assert.False(t, p.IsVerified())
	tr := true
	p.Verified = &tr
	assert.True(t, p.IsVerified())
}
