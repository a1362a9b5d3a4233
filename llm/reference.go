package llm

// Reference material injected into generation prompts to bias output toward
// cinematic structure. Drawn from standard cinematography texts (Walter
// Murch's rule of six and friends).

const CinematographyReference = `
CINEMATOGRAPHY PRINCIPLES:

1. ESTABLISHING SHOTS: Start with wide shot to establish location/context
2. THE RULE OF SIX: (per Walter Murch) Emotion, Story, Rhythm, Eye-trace, 2D Plane, 3D Space
3. CUTTING ON ACTION: Cut during movement to hide the edit
4. SHOT REVERSE SHOT: For dialogue and confrontation
5. 180-DEGREE RULE: Maintain spatial relationship between characters
6. RACK FOCUS: Shift focus between foreground/background to reveal information

CAMERA MOVEMENTS:
- DOLLY IN: Moves closer to subject (increasing intensity/intimacy)
- DOLLY OUT: Moves away (revealing context, decreasing intensity)
- TRACKING: Follows subject movement (parallel to action)
- CRANE UP/DOWN: Reveals or diminishes subject's power
- PAN: Reveals what's to the side (discovery)
- TILT: Reveals what's above/below (power dynamics)
- HANDHELD: Creates documentary realism, unease

LIGHTING PRINCIPLES:
- THREE-POINT LIGHTING: Key (main), Fill (softens shadows), Back (separation)
- LOW KEY: High contrast, dramatic shadows (mystery, tension)
- HIGH KEY: Even illumination (comedy, light mood)
- PRACTICAL LIGHTS: Lights within the scene (lamps, windows)
- MOTIVATED LIGHTING: Light sources that make sense in the scene

COLOR THEORY:
- TEAL & ORANGE: Classic cinematic contrast (cool shadows, warm skin tones)
- MONOCHROMATIC: Single color family (unified mood)
- COMPLEMENTARY: Opposite colors (tension, conflict)
- WARM TONES: Comfort, nostalgia, happiness
- COOL TONES: Detachment, sadness, mystery

PACING RHYTHMS:
- FAST CUTS: Action, excitement, chaos
- SLOW CUTS: Contemplation, sadness, epic scale
- MIXED: Build tension then release
- MATCH CUTS: Visual similarities between shots for thematic connection

COMPOSITION:
- RULE OF THIRDS: Place subject on intersection points
- CENTER FRAME: Power, focus, confrontation
- FOREGROUND ELEMENTS: Create depth
- NEGATIVE SPACE: Isolation, emptiness, anticipation
`

const ActingReference = `
CHARACTER EXPRESSION & BODY LANGUAGE:

1. EYES ARE KEY: The window to emotion - focus on eye contact and direction
2. SUBTEXT: What the character really feels vs. what they show
3. PHYSICAL ACTION: "Show, don't tell" - behavior reveals character
4. STILLNESS: Powerful moments often have no movement
5. REACTION SHOTS: How others respond reveals context

EMOTIONAL CONTINUUM:
- RESTRAINED: Subtle, internal emotion (close-ups needed)
- EXPRESSED: Clear outward emotion
- OVERWHELMING: Cannot be contained (physical expression)
- CONFLICTED: Mixed emotions create dramatic tension
`

// Fixed reference lists for camera-parameter selection.
var (
	Cameras = []string{
		"RED V-Raptor",
		"Sony Venice",
		"Max Film Camera",
		"ARRI Alexa 35",
		"Arriflex 16SR",
		"Panavision Millennium DXL 2",
	}

	Lenses = []string{
		"Lensbaby",
		"Hawk V-Lite",
		"Laowa Macro",
		"Canon K-35",
		"Panavision C-Series",
		"ARRI Signature Prime",
		"Cooke S4",
		"Petzval",
		"Helios",
		"JDC Xtal Xpress",
		"Zeiss Ultra Prime",
	}

	FocalLengths = []string{"8mm", "14mm", "35mm", "50mm"}

	Apertures = []string{"f/1.4", "f/4", "f/11"}
)
