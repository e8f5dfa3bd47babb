package scan

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// NodeType distinguishes folders from files in the tree
type NodeType string

const (
	TypeFolder NodeType = "folder"
	TypeFile   NodeType = "file"
)

// Node is a single entry in the manifest tree. Folders carry Children,
// files carry Path.
type Node struct {
	Name     string
	Type     NodeType
	Path     string
	Children []*Node
}

// NewFolder creates a folder node with an empty, non-nil children list
func NewFolder(name string) *Node {
	return &Node{
		Name:     name,
		Type:     TypeFolder,
		Children: []*Node{},
	}
}

// NewFile creates a file node
func NewFile(name, path string) *Node {
	return &Node{
		Name: name,
		Type: TypeFile,
		Path: path,
	}
}

// IsFolder reports whether the node is a folder
func (n *Node) IsFolder() bool {
	return n.Type == TypeFolder
}

// IsFile reports whether the node is a file
func (n *Node) IsFile() bool {
	return n.Type == TypeFile
}

// Equal reports whether two trees are structurally identical
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Name != other.Name || n.Type != other.Type || n.Path != other.Path {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Stats counts the files and folders in the tree, the node itself included
func (n *Node) Stats() (files, folders int) {
	if n == nil {
		return 0, 0
	}
	if n.IsFile() {
		return 1, 0
	}
	folders = 1
	for _, child := range n.Children {
		f, d := child.Stats()
		files += f
		folders += d
	}
	return files, folders
}

// folderDoc and fileDoc fix the serialized field set per node type
type folderDoc struct {
	Name     string   `json:"name" yaml:"name"`
	Type     NodeType `json:"type" yaml:"type"`
	Children []*Node  `json:"children" yaml:"children"`
}

type fileDoc struct {
	Name string   `json:"name" yaml:"name"`
	Type NodeType `json:"type" yaml:"type"`
	Path string   `json:"path" yaml:"path"`
}

// rawDoc is the union used when decoding
type rawDoc struct {
	Name     string   `json:"name" yaml:"name"`
	Type     NodeType `json:"type" yaml:"type"`
	Path     string   `json:"path" yaml:"path"`
	Children []*Node  `json:"children" yaml:"children"`
}

func (n *Node) document() any {
	if n.IsFile() {
		return fileDoc{Name: n.Name, Type: n.Type, Path: n.Path}
	}
	children := n.Children
	if children == nil {
		children = []*Node{}
	}
	return folderDoc{Name: n.Name, Type: TypeFolder, Children: children}
}

func (n *Node) fromRaw(raw rawDoc) {
	n.Name = raw.Name
	n.Type = raw.Type
	if raw.Type == TypeFile {
		n.Path = raw.Path
		n.Children = nil
		return
	}
	n.Path = ""
	n.Children = raw.Children
	if n.Children == nil {
		n.Children = []*Node{}
	}
}

// MarshalJSON emits children only on folders and path only on files
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(n.document()); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw rawDoc
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n.fromRaw(raw)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (n *Node) MarshalYAML() (any, error) {
	return n.document(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	var raw rawDoc
	if err := value.Decode(&raw); err != nil {
		return err
	}
	n.fromRaw(raw)
	return nil
}
