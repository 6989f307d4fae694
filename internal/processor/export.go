package processor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/nguyentantai21042004/vttloc/internal/sentinel"
)

const (
	fontName   = "Times New Roman"
	fontSize   = 13
	markerSize = 9
	markerGrey = "808080"
)

var reMarker = regexp.MustCompile(sentinel.TimestampPattern.String() + "|" + sentinel.SpeakerPattern.String())

// exportDocx writes a reading copy of a prepared stream: one paragraph per
// stream line, markers in small grey type so reviewers can skim the text
func (p *implProcessor) exportDocx(ctx context.Context, streamPath, outputPath string) error {
	f, err := os.Open(streamPath)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}
	title := strings.TrimSuffix(filepath.Base(streamPath), filepath.Ext(streamPath))
	doc.AddParagraph("").AddText(title).Font(fontName).Size(16).Color("000000").Bold(true)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		addStreamLine(doc.AddParagraph(""), line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return err
	}
	p.logger.Info(ctx, "docx written", "file", outputPath)
	return nil
}

func addStreamLine(para *docx.Paragraph, line string) {
	parts := reMarker.Split(line, -1)
	markers := reMarker.FindAllString(line, -1)

	for i, part := range parts {
		if part != "" {
			para.AddText(part).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(markers) {
			para.AddText(markers[i]).Font(fontName).Size(markerSize).Color(markerGrey)
		}
	}
}

// copyToClipboard is best effort; headless machines have no clipboard
func (p *implProcessor) copyToClipboard(ctx context.Context, streamPath string) {
	data, err := os.ReadFile(streamPath)
	if err != nil {
		p.logger.Warn(ctx, "clipboard copy skipped", "file", streamPath, "error", err)
		return
	}
	if err := p.copyText(string(data)); err != nil {
		p.logger.Warn(ctx, "clipboard copy failed", "error", err)
		return
	}
	p.logger.Info(ctx, "prepared stream copied to clipboard", "file", streamPath)
}
