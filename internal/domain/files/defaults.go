package files

// Sample file headers recognised by content type detection
var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	pdfHeader  = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n")
)

// Default returns the desktop's standard tree
func Default() *FS {
	fs, err := New(
		Folder("Users",
			Folder("Durgas",
				Folder("Desktop",
					File("screenshot-1.png", pngHeader),
				),
				Folder("Documents",
					File("project-plan.pdf", pdfHeader),
					File("notes.txt", []byte("Meeting notes\n\n- Finish the portfolio refresh\n- Record the creator studio demo\n")),
				),
				Folder("Downloads"),
				Folder("Pictures",
					File("avatar.jpg", jpegHeader),
				),
			),
		),
		Folder("Windows",
			Folder("system32"),
		),
		Folder("Program Files"),
	)
	if err != nil {
		panic("files: invalid default tree: " + err.Error())
	}
	return fs
}

// HomePath is where the file explorer opens
const HomePath = "/Users/Durgas"
