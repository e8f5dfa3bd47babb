package scan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleNode() *Node {
	root := NewFolder("MARKOS PROJECT")
	docs := NewFolder("docs")
	docs.Children = append(docs.Children, NewFile("guide.md", "site/docs/guide.md"))
	root.Children = append(root.Children, docs, NewFile("index.html", "index.html"))
	return root
}

func TestNode_Constructors(t *testing.T) {
	folder := NewFolder("docs")
	assert.True(t, folder.IsFolder())
	assert.False(t, folder.IsFile())
	assert.NotNil(t, folder.Children)
	assert.Empty(t, folder.Path)

	file := NewFile("a.md", "docs/a.md")
	assert.True(t, file.IsFile())
	assert.Nil(t, file.Children)
	assert.Equal(t, "docs/a.md", file.Path)
}

func TestNode_Equal(t *testing.T) {
	assert.True(t, sampleNode().Equal(sampleNode()))

	changed := sampleNode()
	changed.Children[0].Children[0].Path = "other.md"
	assert.False(t, sampleNode().Equal(changed))

	shorter := sampleNode()
	shorter.Children = shorter.Children[:1]
	assert.False(t, sampleNode().Equal(shorter))

	var nilNode *Node
	assert.True(t, nilNode.Equal(nil))
	assert.False(t, sampleNode().Equal(nil))
}

func TestNode_Stats(t *testing.T) {
	files, folders := sampleNode().Stats()
	assert.Equal(t, 2, files)
	assert.Equal(t, 2, folders)

	var nilNode *Node
	files, folders = nilNode.Stats()
	assert.Zero(t, files)
	assert.Zero(t, folders)
}

func TestNode_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(sampleNode())
	require.NoError(t, err)

	want := `{"name":"MARKOS PROJECT","type":"folder","children":[` +
		`{"name":"docs","type":"folder","children":[{"name":"guide.md","type":"file","path":"site/docs/guide.md"}]},` +
		`{"name":"index.html","type":"file","path":"index.html"}]}`
	assert.Equal(t, want, string(data))
}

func TestNode_MarshalJSONNilChildren(t *testing.T) {
	data, err := json.Marshal(&Node{Name: "x", Type: TypeFolder})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"x","type":"folder","children":[]}`, string(data))
}

func TestNode_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(sampleNode())
	require.NoError(t, err)

	var decoded Node
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, sampleNode().Equal(&decoded))
}

func TestNode_YAMLRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(sampleNode())
	require.NoError(t, err)
	assert.Contains(t, string(data), "path: site/docs/guide.md")

	var decoded Node
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.True(t, sampleNode().Equal(&decoded))
}
