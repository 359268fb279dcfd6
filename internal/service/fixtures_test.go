package service

import (
	"bytes"
	"fmt"
	"testing"
)

// buildPDF assembles a minimal single-generation PDF from numbered body
// objects, computing the xref offsets at runtime so fixtures stay valid
// when edited. Object 1 must be the document catalog.
func buildPDF(t *testing.T, version string, objects ...string) []byte {
	t.Helper()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%%PDF-%s\n", version)

	offsets := make([]int, 0, len(objects))
	for i, obj := range objects {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, offset := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offset)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefOffset)

	return buf.Bytes()
}

// malformedContentPDF is structurally valid (header, xref, page tree) but
// carries a content stream with a bare Tj operator, which makes the
// ledongthuc parser panic instead of returning an error.
func malformedContentPDF(t *testing.T) []byte {
	t.Helper()
	return buildPDF(t, "1.4",
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R >>",
		"<< /Length 8 >>\nstream\nBT Tj ET\nendstream",
	)
}

// acroFormPDF carries two AcroForm fields: a required text field with a
// value, and a read-only checked checkbox.
func acroFormPDF(t *testing.T) []byte {
	t.Helper()
	return buildPDF(t, "1.7",
		"<< /Type /Catalog /Pages 2 0 R /AcroForm << /Fields [4 0 R 5 0 R] >> >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
		"<< /FT /Tx /T (buyer_name) /V (Jane Roe) /Ff 2 >>",
		"<< /FT /Btn /T (accepted) /V /Yes /Ff 1 >>",
	)
}
