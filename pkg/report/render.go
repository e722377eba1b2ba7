package report

import (
	"fmt"
	"io"
	"strings"
)

// Render escribe el reporte como texto: un título por sección, una línea
// "etiqueta: valor" por entrada y una línea en blanco entre secciones.
func Render(w io.Writer, rep Report) error {
	for i, sec := range rep.Sections {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "【%s】\n", sec.Title); err != nil {
			return err
		}
		for _, e := range sec.Entries {
			if _, err := fmt.Fprintf(w, "%s: %s\n", e.Label, e.Value); err != nil {
				return err
			}
		}
	}
	return nil
}

// String retorna el reporte renderizado como texto
func (r Report) String() string {
	var sb strings.Builder
	// strings.Builder nunca retorna error
	_ = Render(&sb, r)
	return sb.String()
}
