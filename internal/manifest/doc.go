// Package manifest wraps a scanned directory tree into the document
// consumed by the site's file explorer.
//
// # Manifest Format
//
// The document is indented JSON by default:
//
//	{
//	  "version": "1.0",
//	  "generated": "2024-05-01T10:15:30.123456",
//	  "structure": {
//	    "name": "MARKOS PROJECT",
//	    "type": "folder",
//	    "children": [
//	      {"name": "README.md", "type": "file", "path": "README.md"}
//	    ]
//	  }
//	}
//
// Folder nodes carry "children", file nodes carry "path". "structure" is
// null when the scan root does not exist. YAML is available as an
// alternate encoding of the same document.
//
// # Usage
//
//	gen := manifest.NewGenerator(builder)
//	m, err := gen.Generate("/srv/project")
//	if err != nil {
//	    return err
//	}
//	err = manifest.Encode(os.Stdout, m, manifest.FormatJSON, 2)
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrUnsupportedFormat: encoding format is neither json nor yaml
//   - ErrInvalidDocument: input could not be decoded as a manifest
package manifest
