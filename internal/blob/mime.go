package blob

import (
	"log"
	"mime"
)

func init() {
	ensureMimeType(".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ensureMimeType(".json", "application/json")
	ensureMimeType(".csv", "text/csv; charset=utf-8")
}

// ensureMimeType registers typ for ext unless the system table already knows it.
func ensureMimeType(ext, typ string) {
	if mime.TypeByExtension(ext) != "" {
		return
	}
	if err := mime.AddExtensionType(ext, typ); err != nil {
		log.Printf("blob: failed to register MIME type for %s: %v", ext, err)
	}
}
