package document

import (
	"fmt"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
)

const (
	// WidthAttributeKey names the frame width attribute.
	WidthAttributeKey = "width"
	// MaxWidthAttributeKey names the frame maximum width attribute.
	MaxWidthAttributeKey = "maxWidth"
	// TextStyleAttributeKey names the text style reference attribute.
	TextStyleAttributeKey = "textStyle"
	// ColorStyleAttributeKey names the color style reference attribute.
	ColorStyleAttributeKey = "colorStyle"

	attributeDecodeErrorTemplateConstant = "failed to decode %s attributes: %w"
	frameSizingDescriptionConstant       = "frame sizing"
	styleReferencesDescriptionConstant   = "style reference"
)

// Attributes carries the style-relevant attributes of a node.
type Attributes map[string]any

// Clone returns a shallow copy of the attributes.
func (attributes Attributes) Clone() Attributes {
	if attributes == nil {
		return Attributes{}
	}
	cloned := make(Attributes, len(attributes))
	for attributeKey, attributeValue := range attributes {
		cloned[attributeKey] = attributeValue
	}
	return cloned
}

// FrameSizing is the typed view of a frame's width descriptors.
type FrameSizing struct {
	Width    string  `mapstructure:"width"`
	MaxWidth *string `mapstructure:"maxWidth"`
}

// HasMaxWidth reports whether a maximum width constraint is present.
func (sizing FrameSizing) HasMaxWidth() bool {
	return sizing.MaxWidth != nil && len(strings.TrimSpace(*sizing.MaxWidth)) > 0
}

// StyleReferences is the typed view of a node's style catalog references.
type StyleReferences struct {
	TextStyle  *string `mapstructure:"textStyle"`
	ColorStyle *string `mapstructure:"colorStyle"`
}

// DecodeFrameSizing extracts width descriptors from node attributes.
func DecodeFrameSizing(attributes Attributes) (FrameSizing, error) {
	var sizing FrameSizing
	if decodeError := decodeAttributes(attributes, &sizing); decodeError != nil {
		return FrameSizing{}, fmt.Errorf(attributeDecodeErrorTemplateConstant, frameSizingDescriptionConstant, decodeError)
	}
	sizing.Width = strings.TrimSpace(sizing.Width)
	return sizing, nil
}

// DecodeStyleReferences extracts text and color style references from node attributes.
func DecodeStyleReferences(attributes Attributes) (StyleReferences, error) {
	var references StyleReferences
	if decodeError := decodeAttributes(attributes, &references); decodeError != nil {
		return StyleReferences{}, fmt.Errorf(attributeDecodeErrorTemplateConstant, styleReferencesDescriptionConstant, decodeError)
	}
	return references, nil
}

func decodeAttributes(attributes Attributes, target any) error {
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if decoderError != nil {
		return decoderError
	}
	return decoder.Decode(map[string]any(attributes))
}
