/*
Package render turns a campaign page template into a static HTML page.

Rendering is literal substring substitution: a fixed set of placeholder tokens
such as #MainTitle# or #BannerPic# is replaced, in a fixed order, with the
values of a Context. Two known HTML fragments, the verified badge and the
famous-person endorsement, are stripped when the matching Context flag is off.
The template is never parsed, so anything that is not a recognised token or
fragment is copied through untouched.

Render is pure and works on strings. Renderer.RenderFile is the I/O shell that
reads a template from disk and writes the page atomically.
*/
package render
