// Package docmark turns documentation markdown with comment annotations
// into HTML with structured components and a heading list.
//
// # Quick Start
//
//	conv := docmark.NewConverter()
//
//	result, err := conv.Convert(ctx, docmark.Input{
//	    Markdown: "# Install\n\n<!-- ::start:tabs -->\n\n## npm\n\n...\n\n<!-- ::end:tabs -->",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// # Annotations
//
// Annotations are HTML comments, so plain markdown renderers ignore them:
//
//	<!-- ::badge color="red" -->          inline component
//	<!-- ::start:tabs sync=os -->         block start
//	<!-- ::end:tabs -->                   block end
//
// A block adopts every sibling up to the first matching end marker and
// becomes a <component-wrapper data-component="tabs" data-attributes="{...}">
// element. Built-in constructs rewrite their component further:
//
//   - tabs: one <tab-panel> per heading of the most significant level
//   - frameworks: one <framework-panel> per level-1 heading naming a framework
//
// Unknown constructs stay as opaque component elements. Register your own
// with WithTransform.
//
// # Pipeline
//
//  1. Front matter split and markdown preprocessing (==highlight== syntax)
//  2. Markdown to HTML via Goldmark (GFM, raw HTML kept)
//  3. Annotation recognition
//  4. Construct dispatch
//  5. Heading collection (ids assigned from slugs)
//  6. Optional code highlighting (chroma) and .md link rewriting
//
// Nothing after step 2 fails: malformed annotations degrade gracefully and
// are reported in Result.Diagnostics.
//
// # Parallel Processing
//
// ConvertAll converts independent documents on a bounded number of
// goroutines. Sections of one composite page that share a heading
// accumulator must go through Convert one after another:
//
//	var headings []docmark.Heading
//	for _, section := range sections {
//	    _, err := conv.Convert(ctx, docmark.Input{Markdown: section, Headings: &headings})
//	    ...
//	}
package docmark
