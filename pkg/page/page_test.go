package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginPage = `<!DOCTYPE html>
<html>
<head><title>  Sign   in </title><script>var a = "<a href='/x'>x</a>";</script></head>
<body>
  <nav>
    <a href="/">Home</a>
    <a href="/about">  About
      us </a>
    <a href="/logo"><img src="logo.png" alt="Company logo" title="Logo"></a>
    <a href="/icon"><img src="icon.png" title="Icon only"></a>
    <a name="anchor">not a link</a>
  </nav>
  <form>
    <label for="user">Username:</label>
    <input id="user" type="text" placeholder="you@example.com">
    <input type="hidden" name="csrf" value="secret">
    <input id="pass" type="PASSWORD" value="hunter2">
    <input type="submit" value="Log in">
    <textarea placeholder="Notes">draft</textarea>
    <select id="lang"><option>en</option></select>
    <button disabled>Disabled</button>
  </form>
  <div onclick="go()">Clickable div</div>
  <div hidden><a href="/secret">Hidden</a></div>
  <div style="display: none"><a href="/none">None</a></div>
  <span tabindex="-1">Script focus only</span>
  <span role="button" tabindex="0">Menu</span>
</body>
</html>`

func TestParseFindsClickableElements(t *testing.T) {
	doc, err := ParseString(loginPage)
	require.NoError(t, err)

	assert.Equal(t, "Sign in", doc.Title)

	var texts []string
	for _, el := range doc.Elements {
		texts = append(texts, el.Tag+":"+el.Text)
	}
	assert.Equal(t, []string{
		"a:Home",
		"a:About us",
		"a:",
		"a:",
		"input:",
		"input:",
		"input:",
		"textarea:draft",
		"select:en",
		"div:Clickable div",
		"span:Menu",
	}, texts)

	for i, el := range doc.Elements {
		assert.Equal(t, i, el.Index)
	}
}

func TestParseElementAttributes(t *testing.T) {
	doc, err := ParseString(loginPage)
	require.NoError(t, err)
	require.Len(t, doc.Elements, 11)

	about := doc.Elements[1]
	assert.Equal(t, "/about", about.Href)

	logo := doc.Elements[2]
	assert.Equal(t, "Company logo", logo.ImageAlt)
	assert.Equal(t, "Logo", logo.ImageTitle)

	icon := doc.Elements[3]
	assert.Empty(t, icon.ImageAlt)
	assert.Equal(t, "Icon only", icon.ImageTitle)

	user := doc.Elements[4]
	assert.Equal(t, "user", user.ID)
	assert.Equal(t, "text", user.InputType)
	assert.Equal(t, "you@example.com", user.Placeholder)

	pass := doc.Elements[5]
	assert.Equal(t, "password", pass.InputType)
	assert.Equal(t, "hunter2", pass.Value)

	submit := doc.Elements[6]
	assert.Equal(t, "submit", submit.InputType)
	assert.Equal(t, "Log in", submit.Value)

	notes := doc.Elements[7]
	assert.Equal(t, "draft", notes.Value)
	assert.Equal(t, "Notes", notes.Placeholder)
}

func TestParseLabels(t *testing.T) {
	doc, err := ParseString(loginPage)
	require.NoError(t, err)

	assert.Equal(t, []Label{{For: "user", Text: "Username:"}}, doc.Labels)
}

func TestParseImageOnlyForLeadingImage(t *testing.T) {
	doc, err := ParseString(`<a href="/x"><span></span><img alt="late"></a>`)
	require.NoError(t, err)
	require.Len(t, doc.Elements, 1)

	assert.Empty(t, doc.Elements[0].ImageAlt)
}

func TestParseEmptyDocument(t *testing.T) {
	doc, err := ParseString("")
	require.NoError(t, err)

	assert.Empty(t, doc.Elements)
	assert.Empty(t, doc.Labels)
}
