package auth

import (
	"unicode"
	"unicode/utf8"

	"github.com/tinywasm/fmt"
	"github.com/tinywasm/form/input"
)

// postedInputType is the registry type the card schemas bind to. The stock
// email and password inputs accept a narrower alphabet than the card rules.
const postedInputType = "posted"

// maxPostedBytes is the longest password the card accepts, at four bytes per
// rune.
const maxPostedBytes = PasswordMaxLength * utf8.UTFMax

// postedInput screens a raw submitted value before the card sees it: valid
// UTF-8, no control characters, bounded size. Field rules and their messages
// belong to the card validator.
type postedInput struct{ input.Base }

func newPostedInput(parentID, name string) input.Input {
	in := &postedInput{}
	in.Maximum = maxPostedBytes
	in.InitBase(parentID, name, postedInputType)
	return in
}

func (in *postedInput) Clone(parentID, name string) input.Input {
	return newPostedInput(parentID, name)
}

func (in *postedInput) ValidateField(value string) error {
	if len(value) > in.Maximum {
		return fmt.Err(in.FieldName(), "maximum", in.Maximum, "chars")
	}
	if !utf8.ValidString(value) {
		return fmt.Err(in.FieldName(), "encoding", "invalid")
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return fmt.Err(in.FieldName(), "character", "not allowed")
		}
	}
	return nil
}
