// Vestiarium - AI Virtual Try-On and Style Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vestiarium

package gemini

import (
	"fmt"
	"strings"

	"github.com/tomtom215/vestiarium/internal/models"
)

// safetyDirectives is the fixed preamble sent with every generation request.
// Identity preservation is the hard requirement of the product: a composite
// with a redrawn face is worse than no composite, so the directives repeat
// the face constraints in several forms and declare them highest priority on
// conflict. Tuned against real model regressions; edit with care.
const safetyDirectives = `CRITICAL SAFETY AND CONSISTENCY DIRECTIVES:
- The FIRST image MUST be used as the definitive source for the person's face and overall appearance.
- ABSOLUTELY NO re-synthesis, redrawing, retouching, or alteration of the person's face is permitted.
- The person's face, including but not limited to: facial structure, landmarks, skin texture, pores, moles, scars, facial hair (if any), hairline, eye shape, nose shape, mouth shape, and expression, MUST remain IDENTICAL and UNCHANGED.
- Preserve the EXACT facial identity. NO beautification, smoothing, makeup application, or landmark adjustments.
- DO NOT CHANGE THE PERSON'S FACE SHAPE OR FACIAL STRUCTURE.
- Maintain the background, perspective, and lighting IDENTICALLY to the original person image.
- REPLACE existing garments with the provided clothing: top replaces top layer, pants replace pants, shoes replace shoes.
- Remove/ignore backgrounds from clothing product photos; segment garment only (no mannequin or logos).
- Fit garments to the person's pose with correct scale/rotation/warping; align perspective and seams.
- Respect occlusion: body parts (e.g., crossed arms/hands) naturally occlude garments when in front.
- Ensure the ENTIRE PERSON is visible; garments must cover appropriate regions (top on torso/arms, pants on legs to ankles, shoes on feet).
- Do NOT add or remove accessories or objects. No text, logos, or watermarks.
- Treat the face region as STRICTLY PIXEL-LOCKED: identity-specific details MUST remain unchanged and untouched.
- If any instruction conflicts with another, the preservation of the person's facial identity and the integrity of the face shape are the ABSOLUTE HIGHEST PRIORITIES.`

// taskTemplate enumerates the garments being composited; %s receives the
// filled slots as "the top, the pants, the shoes" (present slots only).
const taskTemplate = `Use the FIRST image as the base. Remove backgrounds from the clothing product photos and extract only the garments. REPLACE the person's existing garments with the provided items: top -> torso/arms, pants -> legs to ankles, shoes -> feet. Output a single photorealistic image of the SAME person wearing: %s. Fit garments to the person's pose with correct scale/rotation/warping; match perspective and seam alignment. Handle occlusion correctly (e.g., crossed arms remain in front of the top where appropriate). Keep lighting and shadows consistent. Preserve the face and body shape exactly. No text, logos, or watermarks.`

// buildPrompt combines the safety preamble with the task block for the
// given garment slots.
func buildPrompt(slots []string) string {
	pieces := make([]string, len(slots))
	for i, slot := range slots {
		pieces[i] = "the " + slot
	}
	return safetyDirectives + "\n\nTASK:\n" + fmt.Sprintf(taskTemplate, strings.Join(pieces, ", "))
}

// buildParts assembles the request parts in the order the prompt promises:
// combined directive text first, then the person image, then each garment in
// canonical slot order (top, pants, shoes).
func buildParts(person *models.APIFile, clothing models.ClothingItems) ([]part, error) {
	slots := clothing.Present()
	if len(slots) == 0 {
		return nil, ErrNoClothing
	}
	if person == nil || person.Base64 == "" || person.MimeType == "" {
		return nil, ErrNoPerson
	}

	parts := make([]part, 0, len(slots)+2)
	parts = append(parts, part{Text: buildPrompt(slots)})
	parts = append(parts, imagePart(person))
	for _, f := range clothing.Files() {
		parts = append(parts, imagePart(f))
	}
	return parts, nil
}

// imagePart converts an upload into an inline data part. The MIME type
// defaults to image/jpeg for unlabeled garment payloads.
func imagePart(f *models.APIFile) part {
	mime := f.MimeType
	if mime == "" {
		mime = models.MimeJPEG
	}
	return part{InlineData: &inlineData{MimeType: mime, Data: f.Payload()}}
}
