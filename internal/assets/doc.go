// Package assets provides the stylesheets embedded in styled fragments and
// standalone documents.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles compiled in with go:embed
//	    ├── FilesystemLoader  - styles from a custom directory on disk
//	    └── Resolver          - custom first, embedded as fallback
//
// Resolver is what the converter uses. A custom directory may override a
// single built-in style and keep the others.
//
// # Directory Structure
//
//	{basePath}/
//	└── styles/
//	    └── {name}.css
//
// Every built-in rule is scoped under the .seo-blog-post class shared by the
// styled wrapper and the document article, so a stylesheet never leaks into
// the host page.
//
// # Security
//
// Style names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
