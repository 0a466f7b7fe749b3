package tree

// Tree is a scanned directory tree: a named root and the files under it
type Tree struct {
	Name  string
	Root  string
	Files FileSet
}

// Load scans root and returns it as a named tree
func Load(name, root string) (Tree, error) {
	files, err := Scan(root)
	if err != nil {
		return Tree{}, err
	}
	return Tree{Name: name, Root: root, Files: files}, nil
}

// Path returns the filesystem path of rel inside the tree
func (t Tree) Path(rel string) string {
	return Join(t.Root, rel)
}
