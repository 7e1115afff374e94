package resumegen

import (
	"io/fs"

	vanilla "github.com/goliatone/go-resumegen/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the editor stylesheet and browser runtime so Go
// applications can serve them without a build step.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(resumegen.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
