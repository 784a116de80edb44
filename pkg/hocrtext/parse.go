package hocrtext

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// ParseWords converts raw hOCR data into pages of positioned words.
func ParseWords(data []byte) ([]PageWords, error) {
	// Figure out the character encoding
	content := string(data)
	encoding := "utf-8"
	if metaStart := strings.Index(content, "charset="); metaStart >= 0 {
		metaStart += len("charset=")
		encSnippet := content[metaStart:min(metaStart+20, len(content))]
		fields := strings.FieldsFunc(encSnippet, func(r rune) bool {
			return r == '"' || r == ';' || r == '\'' || r == '>'
		})
		if len(fields) > 0 && fields[0] != "" {
			encoding = strings.ToLower(fields[0])
		}
	}

	// Convert to UTF-8 if needed
	decoded := data
	if encoding != "utf-8" {
		var err error
		decoded, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", encoding, err)
		}
	}

	doc, err := html.Parse(strings.NewReader(string(decoded)))
	if err != nil {
		return nil, err
	}

	var pages []PageWords
	var findPages func(*html.Node)
	findPages = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.Contains(getAttrVal(n, "class"), "ocr_page") {
			pages = append(pages, processPage(n, len(pages)))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findPages(c)
		}
	}
	findPages(doc)

	if len(pages) == 0 {
		return nil, fmt.Errorf("no ocr_page elements found in hOCR data")
	}
	return pages, nil
}

// parseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func parseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// parseBBoxFromTitle extracts a bounding box from a title string.
// Returns nil if the title carries no bbox property.
func parseBBoxFromTitle(title string) *BoundingBox {
	props := parseTitle(title)
	if bbox, ok := props["bbox"]; ok && len(bbox) >= 4 {
		x1, _ := strconv.ParseFloat(bbox[0], 64)
		y1, _ := strconv.ParseFloat(bbox[1], 64)
		x2, _ := strconv.ParseFloat(bbox[2], 64)
		y2, _ := strconv.ParseFloat(bbox[3], 64)
		return &BoundingBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
	}
	return nil
}

// processPage extracts a page's lines and words. Intermediate grouping
// elements (areas, paragraphs) are walked through without being recorded.
// A word outside any ocr_line becomes a line of its own.
func processPage(n *html.Node, index int) PageWords {
	page := PageWords{PageNumber: index + 1}

	if title := getAttrVal(n, "title"); title != "" {
		if bbox := parseBBoxFromTitle(title); bbox != nil {
			page.BBox = *bbox
		}
		// ppageno is 0-based in hOCR; the reader counts pages from 1.
		props := parseTitle(title)
		if ppageno, ok := props["ppageno"]; ok && len(ppageno) > 0 {
			if no, err := strconv.Atoi(ppageno[0]); err == nil {
				page.PageNumber = no + 1
			}
		}
	}

	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode {
			class := getAttrVal(node, "class")
			if strings.Contains(class, "ocr_line") {
				if line := processLine(node); len(line.Words) > 0 {
					page.Lines = append(page.Lines, line)
				}
				return
			}
			if strings.Contains(class, "ocrx_word") {
				if word, ok := processWord(node); ok {
					page.Lines = append(page.Lines, Line{BBox: word.BBox, Words: []Word{word}})
				}
				return
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}

	return page
}

// processLine extracts line geometry and its words.
func processLine(n *html.Node) Line {
	var line Line
	if bbox := parseBBoxFromTitle(getAttrVal(n, "title")); bbox != nil {
		line.BBox = *bbox
	}

	var extractWords func(*html.Node)
	extractWords = func(node *html.Node) {
		if node.Type == html.ElementNode && strings.Contains(getAttrVal(node, "class"), "ocrx_word") {
			if word, ok := processWord(node); ok {
				line.Words = append(line.Words, word)
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			extractWords(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractWords(c)
	}

	return line
}

// processWord extracts a word's text, box and confidence. Words without
// text or a bounding box are dropped.
func processWord(n *html.Node) (Word, bool) {
	var word Word

	title := getAttrVal(n, "title")
	bbox := parseBBoxFromTitle(title)
	if bbox == nil {
		return word, false
	}
	word.BBox = *bbox

	props := parseTitle(title)
	if conf, ok := props["x_wconf"]; ok && len(conf) > 0 {
		word.Confidence, _ = strconv.ParseFloat(conf[0], 64)
	}

	word.Text = extractTextContent(n)
	if word.Text == "" {
		return word, false
	}
	return word, true
}

// extractTextContent gets all text from a node and its children
func extractTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}
	var text string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text += extractTextContent(c)
	}
	return strings.TrimSpace(text)
}

// Get the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}
