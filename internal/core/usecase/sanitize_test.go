package usecase

import (
	"strings"
	"testing"
)

func TestCleanLegalResponseHeadingsAndBullets(t *testing.T) {
	in := "## Legal Basis\n- Article 14\n* Article 15\n**Sources**\n- India Code"
	out := CleanLegalResponse(in)

	if strings.Contains(out, "#") || strings.Contains(out, "**") {
		t.Errorf("markdown markers survived: %q", out)
	}
	if !strings.Contains(out, "Legal Basis:") {
		t.Errorf("heading not converted to label: %q", out)
	}
	if !strings.Contains(out, "• Article 14") || !strings.Contains(out, "• Article 15") {
		t.Errorf("bullets not normalized: %q", out)
	}
}

func TestCleanLegalResponseLinks(t *testing.T) {
	out := CleanLegalResponse("See [India Code](https://www.indiacode.nic.in/) for Acts.")
	if !strings.Contains(out, "India Code (https://www.indiacode.nic.in/)") {
		t.Errorf("link not flattened: %q", out)
	}

	out = CleanLegalResponse("Visit [https://legislative.gov.in](https://legislative.gov.in) today.")
	if strings.Contains(out, "(https://legislative.gov.in)") {
		t.Errorf("self-link not collapsed: %q", out)
	}
	if !strings.Contains(out, "https://legislative.gov.in") {
		t.Errorf("url lost entirely: %q", out)
	}
}

func TestCleanLegalResponseDuplicateHeadings(t *testing.T) {
	out := CleanLegalResponse("Legal basis:\nLegal basis:\nArticle 21")
	if strings.Count(out, "Legal basis:") != 1 {
		t.Errorf("duplicate heading kept: %q", out)
	}
}

func TestCleanLegalResponseCollapsesBlankLines(t *testing.T) {
	out := CleanLegalResponse("a\n\n\n\n\nb")
	if out != "a\n\nb" {
		t.Errorf("got %q, want %q", out, "a\n\nb")
	}
}

func TestFormatOutputMarkdownMode(t *testing.T) {
	in := "**Point**\n\n\n\n- item"
	out := FormatOutput(in, true)
	if !strings.Contains(out, "**Point**") {
		t.Errorf("markdown mode must keep markers: %q", out)
	}
	if strings.Contains(out, "\n\n\n") {
		t.Errorf("blank runs not collapsed: %q", out)
	}
}

func TestFormatPlainStripsMarkdown(t *testing.T) {
	in := "# Heading\n**bold** and *italic* and `code`\n* starred bullet"
	out := FormatPlain(in)

	if strings.ContainsAny(out, "#*`") {
		t.Errorf("markdown markers survived: %q", out)
	}
	if !strings.Contains(out, "Heading") {
		t.Errorf("heading text lost: %q", out)
	}
	if !strings.Contains(out, "- starred bullet") {
		t.Errorf("starred bullet not converted: %q", out)
	}
}

func TestFormatPlainDropsLiteralTitleLine(t *testing.T) {
	out := FormatPlain("Title\n\nActual content")
	if strings.HasPrefix(out, "Title") {
		t.Errorf("literal Title line kept: %q", out)
	}
	if !strings.Contains(out, "Actual content") {
		t.Errorf("content lost: %q", out)
	}
}

func TestSanitizePlainBulletsToDot(t *testing.T) {
	out := Sanitize("- first\n- second", false)
	if !strings.Contains(out, "• first") || !strings.Contains(out, "• second") {
		t.Errorf("bullets must become dots in the clean pass: %q", out)
	}
}
