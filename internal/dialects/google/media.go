package google

import (
	"strings"

	"google.golang.org/genai"

	"github.com/agentstation/genctl/internal/dialects/base"
	"github.com/agentstation/genctl/internal/utils/ptr"
	"github.com/agentstation/genctl/pkg/capabilities"
	"github.com/agentstation/genctl/pkg/controls"
	"github.com/agentstation/genctl/pkg/draft"
)

// personGeneration canonicalizes a person generation literal to the
// upper-case API enum.
func personGeneration(s string) (genai.PersonGeneration, bool) {
	switch pg := genai.PersonGeneration(strings.ToUpper(s)); pg {
	case genai.PersonGenerationDontAllow, genai.PersonGenerationAllowAdult, genai.PersonGenerationAllowAll:
		return pg, true
	default:
		return "", false
	}
}

func parsePersonGeneration(v any) string {
	s, ok := draft.String(v)
	if !ok {
		return ""
	}
	pg, ok := personGeneration(s)
	if !ok {
		return ""
	}
	return string(pg)
}

func validModalities(mods []string) bool {
	for _, m := range mods {
		switch genai.Modality(m) {
		case genai.ModalityText, genai.ModalityImage, genai.ModalityAudio:
		default:
			return false
		}
	}
	return len(mods) > 0
}

// buildImage writes the image fields of a generateContent image model.
// imageSize is gated on the model's size tiers; personGeneration and
// imageOutputOptions exist only on Vertex.
func (v variant) buildImage(gc map[string]any, img *controls.ImageControls, caps capabilities.Set) {
	if len(img.ResponseModalities) > 0 {
		gc["responseModalities"] = base.StringList(img.ResponseModalities)
	}

	ic := map[string]any{}
	if img.AspectRatio != "" {
		ic["aspectRatio"] = img.AspectRatio
	}
	if img.ImageSize != "" && caps.SupportsImageSize(img.ImageSize) {
		ic["imageSize"] = img.ImageSize
	}
	if v.vertex {
		if pg, ok := personGeneration(img.PersonGeneration); ok {
			ic["personGeneration"] = string(pg)
		}
	}
	if caps.SupportsImageOutputOptions {
		opts := map[string]any{}
		if img.OutputMIMEType != "" {
			opts["mimeType"] = img.OutputMIMEType
		}
		if img.CompressionQuality != nil {
			opts["compressionQuality"] = *img.CompressionQuality
		}
		if len(opts) > 0 {
			ic["imageOutputOptions"] = opts
		}
	}
	if len(ic) > 0 {
		gc["imageConfig"] = ic
	}
}

func (v variant) parseImage(gc map[string]any, caps capabilities.Set) *controls.ImageControls {
	img := &controls.ImageControls{}
	if mods, ok := draft.Strings(gc["responseModalities"]); ok && validModalities(mods) {
		img.ResponseModalities = mods
	}

	if ic, ok := draft.Object(gc["imageConfig"]); ok {
		img.AspectRatio, _ = draft.String(ic["aspectRatio"])
		if size, ok := draft.String(ic["imageSize"]); ok && caps.SupportsImageSize(size) {
			img.ImageSize = size
		}
		if v.vertex {
			img.PersonGeneration = parsePersonGeneration(ic["personGeneration"])
		}
		if opts, ok := draft.Object(ic["imageOutputOptions"]); ok && caps.SupportsImageOutputOptions {
			img.OutputMIMEType, _ = draft.String(opts["mimeType"])
			if q, ok := draft.Int(opts["compressionQuality"]); ok {
				img.CompressionQuality = ptr.Int(q)
			}
		}
	}

	if isZeroImage(img) {
		return nil
	}
	return img
}

// predictParameters renders the parameters object of an Imagen or Veo
// request. The predict API spells person generation in lower case.
func predictParameters(c *controls.GenerationControls, caps capabilities.Set) map[string]any {
	params := map[string]any{}
	switch caps.Media {
	case capabilities.MediaImage:
		if img := c.Image; img != nil {
			putString(params, "aspectRatio", img.AspectRatio)
			if pg, ok := personGeneration(img.PersonGeneration); ok {
				params["personGeneration"] = strings.ToLower(string(pg))
			}
			if img.NumberOfImages != nil {
				params["sampleCount"] = *img.NumberOfImages
			}
			if img.ImageSize != "" && caps.SupportsImageSize(img.ImageSize) {
				params["sampleImageSize"] = img.ImageSize
			}
		}
	case capabilities.MediaVideo:
		if vid := c.Video; vid != nil {
			putString(params, "aspectRatio", vid.AspectRatio)
			if vid.DurationSeconds != nil {
				params["durationSeconds"] = *vid.DurationSeconds
			}
			putString(params, "resolution", vid.Resolution)
			putString(params, "negativePrompt", vid.NegativePrompt)
			if pg, ok := personGeneration(vid.PersonGeneration); ok {
				params["personGeneration"] = strings.ToLower(string(pg))
			}
			if vid.GenerateAudio != nil {
				params["generateAudio"] = *vid.GenerateAudio
			}
			if vid.NumberOfVideos != nil {
				params["sampleCount"] = *vid.NumberOfVideos
			}
		}
	}
	if c.Seed != nil {
		params["seed"] = *c.Seed
	}
	return params
}

func applyPredict(params map[string]any, caps capabilities.Set, out *controls.GenerationControls) {
	if n, ok := draft.Int(params["seed"]); ok {
		out.Seed = ptr.Int(n)
	}

	switch caps.Media {
	case capabilities.MediaImage:
		img := &controls.ImageControls{}
		img.AspectRatio, _ = draft.String(params["aspectRatio"])
		img.PersonGeneration = parsePersonGeneration(params["personGeneration"])
		if n, ok := draft.Int(params["sampleCount"]); ok && n > 0 {
			img.NumberOfImages = ptr.Int(n)
		}
		if size, ok := draft.String(params["sampleImageSize"]); ok && caps.SupportsImageSize(size) {
			img.ImageSize = size
		}
		if !isZeroImage(img) {
			out.Image = img
		}
	case capabilities.MediaVideo:
		vid := &controls.VideoControls{}
		vid.AspectRatio, _ = draft.String(params["aspectRatio"])
		vid.Resolution, _ = draft.String(params["resolution"])
		vid.NegativePrompt, _ = draft.String(params["negativePrompt"])
		vid.PersonGeneration = parsePersonGeneration(params["personGeneration"])
		if n, ok := draft.Int(params["durationSeconds"]); ok && n > 0 {
			vid.DurationSeconds = ptr.Int(n)
		}
		if b, ok := draft.Bool(params["generateAudio"]); ok {
			vid.GenerateAudio = ptr.Bool(b)
		}
		if n, ok := draft.Int(params["sampleCount"]); ok && n > 0 {
			vid.NumberOfVideos = ptr.Int(n)
		}
		if *vid != (controls.VideoControls{}) {
			out.Video = vid
		}
	}
}

func putString(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func isZeroImage(img *controls.ImageControls) bool {
	return img.AspectRatio == "" &&
		img.ImageSize == "" &&
		img.PersonGeneration == "" &&
		img.OutputMIMEType == "" &&
		img.CompressionQuality == nil &&
		len(img.ResponseModalities) == 0 &&
		img.NumberOfImages == nil
}
