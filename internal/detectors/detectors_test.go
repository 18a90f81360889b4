package detectors

import (
	"regexp"
	"strings"
	"testing"

	"github.com/redactyl/credsweep/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classify(field, value string) []types.Finding {
	return New(nil).Classify(field, value)
}

func tagsOf(fs []types.Finding) []types.Tag {
	var out []types.Tag
	for _, f := range fs {
		out = append(out, f.Tag)
	}
	return out
}

func TestClassify_Email(t *testing.T) {
	fs := classify("email", "user@example.com")
	require.Len(t, fs, 1)
	assert.Equal(t, types.Finding{Tag: types.TagEmail, Field: "email", Value: "user@example.com"}, fs[0])

	assert.Empty(t, classify("email", "not-an-email"))
}

func TestClassify_PasswordAnyValue(t *testing.T) {
	for _, v := range []string{"hunter2", "correct horse battery", "P@ss-w0rd!", "1"} {
		fs := classify("password", v)
		require.Len(t, fs, 1, v)
		assert.Equal(t, types.TagPassword, fs[0].Tag)
		assert.Equal(t, v, fs[0].Value)
	}
	assert.Empty(t, classify("password", ""))
}

func TestClassify_Rules(t *testing.T) {
	tests := []struct {
		field, value string
		want         types.Tag
		match        bool
	}{
		{"user_email", "a.b+c@mail.example.org", types.TagEmail, true},
		{"pwd", "s3cret", types.TagPassword, true},
		{"phone", "+1 (555) 123-4567", types.TagPhone, true},
		{"mobile", "12345", types.TagPhone, false},
		{"fullname", "Jane Q. Public", types.TagName, true},
		{"name", "R2D2", types.TagName, false},
		{"cc", "4111 1111 1111 1111", types.TagCreditCard, true},
		{"card", "4111-1111", types.TagCreditCard, false},
		{"card", "41111111111111111111", types.TagCreditCard, false},
		{"ssn", "123-45-6789", types.TagSSN, true},
		{"ssn", "1234", types.TagSSN, false},
		{"api_key", "sk_live_abc123", types.TagAPIKey, true},
		{"SecretKey", "topsecret", types.TagAPIKey, true},
		{"amount", "42", types.TagPassword, false},
	}
	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			got := tagsOf(classify(tt.field, tt.value))
			if tt.match {
				assert.Contains(t, got, tt.want)
			} else {
				assert.NotContains(t, got, tt.want)
			}
		})
	}
}

func TestClassify_CaseInsensitiveFieldNames(t *testing.T) {
	fs := classify("EMAIL", "USER@EXAMPLE.COM")
	require.Len(t, fs, 1)
	assert.Equal(t, "USER@EXAMPLE.COM", fs[0].Value)
}

func TestClassify_NonExclusive(t *testing.T) {
	both := []Rule{
		{Tag: types.TagPassword, Pattern: rePassword, FieldGroup: 1, ValueGroup: 2},
		{Tag: types.TagAPIKey, Pattern: regexp.MustCompile(`(?i)(pass)\s*=\s*(.+)$`), FieldGroup: 1, ValueGroup: 2},
	}
	fs := New(both).Classify("pass", "abc")
	require.Len(t, fs, 2)
	assert.Equal(t, types.Finding{Tag: types.TagPassword, Field: "pass", Value: "abc"}, fs[0])
	assert.Equal(t, types.Finding{Tag: types.TagAPIKey, Field: "pass", Value: "abc"}, fs[1])

	got := tagsOf(classify("pass_api_key", "abcdef"))
	assert.Equal(t, []types.Tag{types.TagAPIKey}, got)

	got = tagsOf(classify("contact_name", "Bob"))
	assert.Equal(t, []types.Tag{types.TagName}, got)
}

func TestClassify_KeywordInValueIgnored(t *testing.T) {
	assert.Empty(t, classify("notes", "password=hunter2"))
	assert.Empty(t, classify("bio", "reach me at email=a@b.com"))

	fs := classify("password", "x; api_key=abc")
	require.Len(t, fs, 1)
	assert.Equal(t, types.Finding{Tag: types.TagPassword, Field: "password", Value: "x; api_key=abc"}, fs[0])
}

func TestFilter(t *testing.T) {
	all := DefaultRules()
	assert.Len(t, Filter(all, "", ""), len(all))

	only := Filter(all, "email, ssn", "")
	require.Len(t, only, 2)
	assert.Equal(t, types.TagEmail, only[0].Tag)
	assert.Equal(t, types.TagSSN, only[1].Tag)

	without := Filter(all, "", "password,api_key")
	assert.Len(t, without, len(all)-2)
	assert.False(t, New(without).hasTag(types.TagPassword))

	none := Filter(all, "", strings.Join(IDs(), ","))
	assert.Empty(t, none)
	assert.Empty(t, New(none).Classify("password", "x"))
}

func (c *Classifier) hasTag(tag types.Tag) bool {
	for _, r := range c.rules {
		if r.Tag == tag {
			return true
		}
	}
	return false
}

func TestCheckIDs(t *testing.T) {
	assert.NoError(t, CheckIDs(""))
	assert.NoError(t, CheckIDs("email, ssn"))
	err := CheckIDs("email,emial")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"emial"`)
}

func TestIDs(t *testing.T) {
	assert.Equal(t, []string{"email", "password", "phone", "name", "credit_card", "ssn", "api_key"}, IDs())
}
