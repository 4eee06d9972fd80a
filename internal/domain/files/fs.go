package files

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/utils"
	"github.com/gabriel-vasile/mimetype"
	"github.com/microcosm-cc/bluemonday"
)

var (
	// ErrNotFound is returned when no node exists at a path
	ErrNotFound = errors.New("file not found")
	// ErrNotAFile is returned when a folder is opened as a file
	ErrNotAFile = errors.New("not a file")
	// ErrNotADirectory is returned when a file is listed as a folder
	ErrNotADirectory = errors.New("not a directory")
)

// Kind distinguishes folders from files
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
)

// Payload keys understood by file-viewing panels
const (
	PayloadFileName    = "fileName"
	PayloadContent     = "content"
	PayloadContentType = "contentType"
	PayloadEncoding    = "encoding"
)

// Node is a folder or file in the tree
type Node struct {
	Name     string
	Kind     Kind
	Content  []byte
	Children []*Node
}

// Folder builds a folder node
func Folder(name string, children ...*Node) *Node {
	return &Node{Name: name, Kind: KindFolder, Children: children}
}

// File builds a file node
func File(name string, content []byte) *Node {
	return &Node{Name: name, Kind: KindFile, Content: content}
}

// Entry describes a node for listings
type Entry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	Kind        Kind   `json:"kind"`
	Size        int    `json:"size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// FS is an immutable in-memory file tree
type FS struct {
	root *Node
}

var namePolicy = bluemonday.StrictPolicy()

// New builds a file system from top-level nodes. Names are validated and
// stripped of markup; siblings must be unique.
func New(roots ...*Node) (*FS, error) {
	root := Folder("")
	for _, n := range roots {
		c, err := cloneNode(n)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, c)
	}
	if err := checkSiblings(root); err != nil {
		return nil, err
	}
	return &FS{root: root}, nil
}

// Lookup returns the entry at p
func (fs *FS) Lookup(p string) (Entry, error) {
	n, err := fs.find(p)
	if err != nil {
		return Entry{}, err
	}
	return entryFor(p, n), nil
}

// List returns the children of the folder at p, folders first, then by name
func (fs *FS) List(p string) ([]Entry, error) {
	n, err := fs.find(p)
	if err != nil {
		return nil, err
	}
	if n.Kind != KindFolder {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, p)
	}

	entries := make([]Entry, 0, len(n.Children))
	for _, c := range n.Children {
		entries = append(entries, entryFor(path.Join(p, c.Name), c))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind == KindFolder
		}
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries, nil
}

// Payload returns the window payload for opening the file at p. Text
// content is passed through; anything else is base64 encoded.
func (fs *FS) Payload(p string) (types.Payload, error) {
	n, err := fs.find(p)
	if err != nil {
		return nil, err
	}
	if n.Kind != KindFile {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, p)
	}

	contentType := detect(n.Content)
	payload := types.Payload{
		PayloadFileName:    n.Name,
		PayloadContentType: contentType,
	}
	if isText(contentType) {
		payload[PayloadContent] = string(n.Content)
	} else {
		payload[PayloadContent] = base64.StdEncoding.EncodeToString(n.Content)
		payload[PayloadEncoding] = "base64"
	}
	return payload, nil
}

func (fs *FS) find(p string) (*Node, error) {
	if err := utils.ValidatePath(p); err != nil {
		return nil, err
	}

	n := fs.root
	if p == "/" {
		return n, nil
	}
	for _, part := range strings.Split(strings.TrimPrefix(p, "/"), "/") {
		next := child(n, part)
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		n = next
	}
	return n, nil
}

func child(n *Node, name string) *Node {
	if n.Kind != KindFolder {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func entryFor(p string, n *Node) Entry {
	e := Entry{Name: n.Name, Path: p, Kind: n.Kind}
	if n.Kind == KindFile {
		e.Size = len(n.Content)
		e.ContentType = detect(n.Content)
	}
	return e
}

func detect(content []byte) string {
	return mimetype.Detect(content).String()
}

func isText(contentType string) bool {
	return strings.HasPrefix(contentType, "text/")
}

func cloneNode(n *Node) (*Node, error) {
	name := strings.TrimSpace(namePolicy.Sanitize(n.Name))
	if err := utils.ValidateFileName(name); err != nil {
		return nil, fmt.Errorf("invalid node %q: %w", n.Name, err)
	}

	c := &Node{Name: name, Kind: n.Kind}
	switch n.Kind {
	case KindFile:
		c.Content = append([]byte(nil), n.Content...)
	case KindFolder:
		for _, ch := range n.Children {
			cc, err := cloneNode(ch)
			if err != nil {
				return nil, err
			}
			c.Children = append(c.Children, cc)
		}
	default:
		return nil, fmt.Errorf("invalid node %q: unknown kind %q", n.Name, n.Kind)
	}
	return c, nil
}

func checkSiblings(n *Node) error {
	seen := make(map[string]struct{}, len(n.Children))
	for _, c := range n.Children {
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("duplicate entry %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		if err := checkSiblings(c); err != nil {
			return err
		}
	}
	return nil
}
