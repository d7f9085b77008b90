package comment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Create validates before touching storage, so a nil DB suffices here.
func TestCreateRejectsBlankText(t *testing.T) {
	svc := NewService(nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.Create(CreateParams{
			ItemType: "project", ItemID: "p-1",
			Text: text, ActorID: "user-1",
		})
		assert.ErrorIs(t, err, errTextRequired, "text %q", text)
	}
}

func TestValidateAuthor(t *testing.T) {
	cases := []struct {
		name    string
		actorID string
		author  string
		email   string
		wantErr error
	}{
		{"authenticated", "user-1", "", "", nil},
		{"anonymous", "", "Ada", "ada@example.com", nil},
		{"neither", "", "", "", errAuthorRequired},
		{"name only", "", "Ada", "", errAuthorRequired},
		{"email only", "", "", "ada@example.com", errAuthorRequired},
		{"both identities", "user-1", "Ada", "ada@example.com", errAuthorAmbiguous},
		{"actor with stray name", "user-1", "Ada", "", errAuthorAmbiguous},
		{"whitespace is empty", "", "  ", "  ", errAuthorRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateAuthor(tc.actorID, tc.author, tc.email)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
