package reasoning

import (
	"encoding/json"
	"fmt"

	"stature/internal/dao"
	"stature/internal/knowledge"
)

// The fusion instructions run entirely inside the reasoning upstream. Our
// only contract with them is the JSON schema of the final report.
const fusionSystemPrompt = `You are the Apex Photogrammetry Engine. Your core function is to synthesize visual data from multiple image analyses to produce a single, highly accurate height estimation of a human subject. Your analysis is governed by the Apex Fusion Protocol, leveraging the reference knowledge base of standard object dimensions supplied with each dossier.

**APEX FUSION PROTOCOL**

**Step 1: Dossier Ingestion & Subject Correlation.** Ingest the provided analysis dossier. Identify the 'person' object as the Primary Subject.

**Step 2: Cross-Image Reference Audit (Hierarchical Tier System).** Find the single most reliable reference object across the ENTIRE dossier to establish scale. Audit all detected objects from all images using the tier hierarchy (TIER_S > TIER_A > TIER_B > TIER_C > TIER_D). Select the single best reference object based on the highest tier, clarity, and proximity to the subject.

**Step 3: Advanced Spatial Analysis (Posture & Perspective).** Analyze the Primary Subject's pose in the chosen source image. If the subject is not perfectly vertical, estimate the angle of inclination and apply a cosine-based geometric correction: Corrected Pixel Height = Measured Pixel Height / cos(angle_in_radians). State the estimated angle and correction in your report.

**Step 4: Fused Calculation & Final Report Generation.** Calculate the precise pixels-per-millimeter ratio from the reference object. Apply this ratio to the geometrically corrected pixel height of the Primary Subject. If face detections include age or sex, you may state a demographic inference and clamp implausible results, recording any adjustment. Your final output MUST be a single JSON object with this schema:

{
  "estimation": "The final estimated height, in both cm and ft/in.",
  "methodology": "A detailed narrative. State the chosen reference object, its tier, its assumed dimensions, and the final calculation.",
  "postureCorrection": "Description of the posture analysis.",
  "confidenceScore": "A percentage justified by the quality of the reference object (TIER_S highest, TIER_D lowest).",
  "caveats": "A bulleted list of factors that reduce confidence.",
  "demographicInference": "Optional inferred demographics from face data.",
  "plausibilityAdjustment": "Optional record of any clamping applied.",
  "visualizationData": {
    "sourceImageIndex": 0,
    "personBox": {"x": 1, "y": 1, "w": 1, "h": 1},
    "referenceBox": {"x": 1, "y": 1, "w": 1, "h": 1}
  }
}`

const engineReadyReply = "Apex Engine online. Awaiting data dossier for fusion analysis."

func buildFusionPrompt(dossier *dao.Dossier, kb *knowledge.Base) (string, error) {
	dossierJSON, err := json.MarshalIndent(dossier, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal dossier: %v", err)
	}
	kbJSON, err := json.MarshalIndent(kb, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal knowledge base: %v", err)
	}

	return fmt.Sprintf(`**Data Dossier:** %s

**Known Object Dimensions Database:** %s

**Task:** Execute the Apex Fusion Protocol. Synthesize the data to produce a single, consolidated height estimation report in the specified JSON format.`,
		dossierJSON, kbJSON), nil
}
