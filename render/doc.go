// Package render connects templates to forge file operations.
//
// A [Template] is a template bound to its data. [Append] and [Generate] wrap
// one in an [Adapter] and hand it to the matching forge step:
//
//	tmpl, err := render.FromString("Generated content.", nil)
//	if err != nil {
//	    return err
//	}
//	if err := render.Generate(tmpl).Forge(ctx, "note.txt"); err != nil {
//	    // errors.Is(err, render.ErrIO) for template and write failures alike
//	    return err
//	}
//
// Nothing is rendered until forge asks for the bytes, and the adapter writes
// straight into the file forge opened.
//
// # Engines
//
// pongo2 is the primary engine; the case filters from package filters are
// registered on first use:
//
//	{{ name|pascalcase }}
//
// text/template works too, through [Text]. [Engine] loads both from a
// directory, picking text/template for files ending in .gotmpl.
package render
