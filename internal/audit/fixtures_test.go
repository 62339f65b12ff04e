package audit_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/docaudit/internal/links"
)

const (
	auditDocumentFileNameConstant = "document.yaml"
	auditDocumentContentConstant  = `text_styles:
  - id: ts-body
    name: Body
    font: Inter
    font_size: 16px
    color: "#111111"
  - id: ts-empty
    name: ""
    font: Inter
    font_size: 0px
    color: "#222222"
color_styles:
  - id: cs-primary
    name: Primary
    light: "#0055ff"
    dark: "#88aaff"
nodes:
  - id: desktop
    name: Desktop
    type: FrameNode
    attributes:
      width: 1440px
      colorStyle: cs-missing
    children:
      - id: hero
        name: Hero
        type: frame
        link: https://example.com
        attributes:
          width: 1fr
          maxWidth: 1200px
          textStyle: ts-body
        children:
          - id: contact
            name: Contact
            type: text
            controls:
              link: mailto:team@example.com
      - id: card
        name: Card
        type: component_instance
        controls:
          label: Press
          phone: tel:+1 555 0100
      - id: sidebar
        name: Sidebar
        type: frame
        link: https://example.com
        attributes:
          width: fit-content
      - id: banner
        name: Banner
        type: frame
        attributes:
          width: 300px
          maxWidth: 960px
`
	auditProbeStatusConstant               = 200
	auditSecureLinkConstant                = "https://example.com"
	auditMailLinkConstant                  = "mailto:team@example.com"
	auditPhoneLinkConstant                 = "tel:+1 555 0100"
	auditEmptyNameViolationConstant        = `Text style "ts-empty" is missing a name`
	auditZeroSizeViolationConstant         = `Text style "ts-empty" has a font size of zero`
	auditUnknownColorViolationConstant     = `Node Desktop (desktop) uses color style "cs-missing" which is not in the color style catalog`
	auditInvalidWidthDescriptorConstant    = `Frame Banner (banner) has unsupported width "300px"`
	auditMissingMaxWidthDescriptorConstant = "Frame Sidebar (sidebar) has no max width"
	auditInconsistencySummaryConstant      = "Frames use 2 different width modes: 1fr, fit-content"
	auditHeroModeDescriptorConstant        = `Frame Hero (hero) uses width mode "1fr"`
	auditSidebarModeDescriptorConstant     = `Frame Sidebar (sidebar) uses width mode "fit-content"`
)

type stubProber struct {
	mutex   sync.Mutex
	targets []string
}

func (prober *stubProber) Probe(executionContext context.Context, targetURL string) (links.ProbeResult, error) {
	prober.mutex.Lock()
	defer prober.mutex.Unlock()
	prober.targets = append(prober.targets, targetURL)
	return links.ProbeResult{StatusCode: auditProbeStatusConstant}, nil
}

func (prober *stubProber) probedTargets() []string {
	prober.mutex.Lock()
	defer prober.mutex.Unlock()
	return append([]string{}, prober.targets...)
}

func writeAuditDocument(testInstance *testing.T) string {
	testInstance.Helper()

	documentPath := filepath.Join(testInstance.TempDir(), auditDocumentFileNameConstant)
	require.NoError(testInstance, os.WriteFile(documentPath, []byte(auditDocumentContentConstant), 0o600))
	return documentPath
}
