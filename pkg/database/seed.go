package database

import (
	"aba_assessment_backend/internal/model"
	"log"

	"gorm.io/gorm"
)

type seedQuestion struct {
	Text      string
	Options   []string
	ScoreType string
}

type seedDomain struct {
	Name      string
	Code      string
	Questions []seedQuestion
}

type seedTemplate struct {
	AssessmentType string
	Title          string
	Description    string
	Domains        []seedDomain
}

// Standard ABA scoring options.
var abaScoreOptions = []string{
	"1 - Not observed / Not present",
	"2 - Emerging / Prompted",
	"3 - Inconsistent / Partial",
	"4 - Consistent / Independent",
	"5 - Mastered / Generalized",
}

var dayc2ScoreOptions = []string{
	"1 - Unable to perform",
	"2 - Emerging skill",
	"3 - Developing",
	"4 - Age-appropriate",
}

var behaviorScoreOptions = []string{
	"1 - Never",
	"2 - Rarely",
	"3 - Sometimes",
	"4 - Often",
	"5 - Always",
}

func abaQuestions(texts ...string) []seedQuestion {
	qs := make([]seedQuestion, len(texts))
	for i, t := range texts {
		qs[i] = seedQuestion{Text: t, Options: abaScoreOptions}
	}
	return qs
}

func dayc2Questions(texts ...string) []seedQuestion {
	qs := make([]seedQuestion, len(texts))
	for i, t := range texts {
		qs[i] = seedQuestion{Text: t, Options: dayc2ScoreOptions}
	}
	return qs
}

func behaviorQuestions(texts ...string) []seedQuestion {
	qs := make([]seedQuestion, len(texts))
	for i, t := range texts {
		qs[i] = seedQuestion{Text: t, Options: behaviorScoreOptions}
	}
	return qs
}

var seedTemplates = []seedTemplate{
	{
		AssessmentType: "ABLLS-R",
		Title:          "ABLLS-R Assessment Questionnaire",
		Description:    "Assessment of Basic Language and Learning Skills - Revised. Evaluates cooperation, visual performance, receptive language, motor imitation, and more.",
		Domains: []seedDomain{
			{
				Name: "Cooperation & Reinforcer Effectiveness",
				Code: "A",
				Questions: abaQuestions(
					"Takes a reinforcer from a familiar adult.",
					"Eats/uses reinforcer appropriately.",
					"Looks at, touches or points to a reinforcer offered.",
					"Approaches adult to obtain reinforcer.",
					"Sits in a chair for a brief period for reinforcer.",
					"Waits without problem behavior for a promised reinforcer.",
					"Makes eye contact with adult when anticipating reinforcer.",
				),
			},
			{
				Name: "Visual Performance",
				Code: "B",
				Questions: abaQuestions(
					"Matches identical objects from an array of 3.",
					"Matches identical pictures from an array of 3.",
					"Matches object to picture from an array of 3.",
					"Matches picture to object from an array of 3.",
					"Sorts non-identical items into categories.",
					"Completes a 3-piece inset puzzle.",
					"Matches non-identical objects of the same class.",
					"Matches associated pictures (e.g., cup and saucer).",
					"Completes a simple ABAB sequencing pattern.",
					"Seriates 3 items by size (smallest to largest).",
					"Extends a simple pattern sequence.",
					"Replicates a sequence of 3 items shown by instructor.",
				),
			},
			{
				Name: "Receptive Language",
				Code: "C",
				Questions: abaQuestions(
					"Responds to own name by orienting towards speaker.",
					"Follows a one-step instruction (e.g., \"sit down\").",
					"Touches named body parts on request.",
					"Touches named objects from an array of 2.",
					"Identifies objects in pictures when named.",
					"Follows instructions with prepositions (e.g., \"put block in cup\").",
					"Selects items by feature (e.g., color).",
					"Selects items by function (e.g., \"which one do you write with?\").",
					"Selects items by class (e.g., \"find the animal\").",
					"Follows two-step related commands.",
					"Identifies actions in pictures.",
					"Discriminates between pronouns (\"my\" and \"your\").",
					"Discriminates singular vs. plural nouns.",
					"Follows instructions involving adjectives (e.g., \"get the big ball\").",
					"Identifies emotions in pictures.",
				),
			},
			{
				Name: "Motor Imitation",
				Code: "D",
				Questions: abaQuestions(
					"Imitates gross motor movements (e.g., clapping hands).",
					"Imitates actions with objects (e.g., pushing a toy car).",
					"Imitates fine motor movements (e.g., pinching fingers).",
					"Imitates oral motor movements (e.g., opening mouth).",
					"Imitates a sequence of two motor actions.",
					"Imitates from a distance (across the room).",
					"Imitates an action in a small group setting.",
					"Copies a simple 2-block structure.",
					"Copies a vertical line drawing.",
					"Imitates novel, previously unseen motor actions.",
					"Imitates a 3-step sequence of motor actions.",
					"Spontaneously imitates peer or adult without prompting.",
					"Copies a complex 4-block design.",
				),
			},
		},
	},
	{
		AssessmentType: "AFLLS",
		Title:          "AFLS Assessment Questionnaire",
		Description:    "Assessment of Functional Living Skills. Evaluates basic living, home, community participation, and school skills across multiple protocols.",
		Domains: []seedDomain{
			{
				Name: "Basic Living Skills - Self Management",
				Code: "SM",
				Questions: abaQuestions(
					"Indicates need for toileting.",
					"Manages clothing for toileting independently.",
					"Uses toilet paper appropriately.",
					"Washes hands with soap and water.",
					"Dries hands after washing.",
					"Covers mouth when coughing or sneezing.",
					"Uses a tissue to blow nose.",
					"Recognizes when clothing is dirty or wet.",
				),
			},
			{
				Name: "Basic Living Skills - Dressing",
				Code: "DR",
				Questions: abaQuestions(
					"Puts on and removes shoes independently.",
					"Puts on socks correctly.",
					"Puts on a pullover shirt independently.",
					"Puts on pants/shorts independently.",
					"Manages buttons and snaps.",
					"Uses a zipper independently.",
					"Selects weather-appropriate clothing.",
					"Ties shoelaces independently.",
				),
			},
			{
				Name: "Basic Living Skills - Grooming",
				Code: "GR",
				Questions: abaQuestions(
					"Brushes teeth with toothpaste.",
					"Brushes or combs hair appropriately.",
					"Washes face independently.",
					"Applies deodorant appropriately.",
					"Maintains appropriate personal hygiene habits.",
				),
			},
			{
				Name: "Home Skills - Meals",
				Code: "HM",
				Questions: abaQuestions(
					"Uses utensils correctly to eat meals.",
					"Pours liquid from a container into a glass.",
					"Prepares a simple snack independently.",
					"Uses a microwave to heat food.",
					"Clears own place setting after eating.",
					"Loads and unloads a dishwasher.",
				),
			},
			{
				Name: "Community Participation Skills",
				Code: "CP",
				Questions: abaQuestions(
					"Walks safely on sidewalks and crosswalks.",
					"Identifies and follows community signs.",
					"Behaves appropriately in public places.",
					"Makes a purchase at a store with assistance.",
					"Uses appropriate social greetings in public.",
					"Waits in line patiently.",
				),
			},
			{
				Name: "School Skills",
				Code: "SC",
				Questions: abaQuestions(
					"Follows classroom rules and routines.",
					"Transitions between activities with minimal support.",
					"Raises hand to get attention or ask a question.",
					"Stays on task for an age-appropriate duration.",
					"Follows multi-step classroom instructions.",
					"Works cooperatively with peers on group activities.",
				),
			},
		},
	},
	{
		AssessmentType: "DAYC-2",
		Title:          "DAYC-2 Assessment Questionnaire",
		Description:    "Developmental Assessment of Young Children - 2nd Edition. Evaluates cognitive, communication, social-emotional, physical, and adaptive behavior development.",
		Domains: []seedDomain{
			{
				Name: "Cognitive Development",
				Code: "COG",
				Questions: dayc2Questions(
					"Demonstrates object permanence (searches for hidden objects).",
					"Explores objects by mouthing, banging, and shaking.",
					"Uses simple cause-and-effect toys appropriately.",
					"Stacks 2 or more blocks.",
					"Sorts objects by color or shape.",
					"Identifies self in a mirror.",
					"Engages in pretend play with toys.",
					"Understands concept of \"one\" and \"many\".",
				),
			},
			{
				Name: "Communication",
				Code: "COM",
				Questions: dayc2Questions(
					"Responds to sounds by turning head towards source.",
					"Babbles using consonant-vowel combinations.",
					"Uses gestures to communicate (pointing, waving).",
					"Says first meaningful words (e.g., \"mama\", \"dada\").",
					"Combines two words (e.g., \"more juice\").",
					"Follows simple verbal directions.",
					"Names common objects when asked.",
					"Uses 3-word sentences to express needs.",
				),
			},
			{
				Name: "Social-Emotional Development",
				Code: "SE",
				Questions: dayc2Questions(
					"Shows attachment to primary caregiver.",
					"Smiles in response to social interaction.",
					"Shows interest in other children.",
					"Expresses emotions appropriately (happy, sad, angry).",
					"Takes turns during simple play activities.",
					"Shows empathy towards others in distress.",
					"Plays cooperatively with other children.",
					"Manages transitions between activities without distress.",
				),
			},
			{
				Name: "Physical Development",
				Code: "PHY",
				Questions: dayc2Questions(
					"Holds head steady when held upright.",
					"Rolls over from back to front and front to back.",
					"Sits without support.",
					"Crawls on hands and knees.",
					"Walks independently.",
					"Climbs stairs with support.",
					"Grasps small objects using pincer grasp.",
					"Kicks a ball forward.",
				),
			},
			{
				Name: "Adaptive Behavior",
				Code: "AB",
				Questions: dayc2Questions(
					"Drinks from a cup with minimal spilling.",
					"Feeds self with a spoon.",
					"Indicates when diaper is wet or dirty.",
					"Attempts to wash hands with assistance.",
					"Removes simple clothing items (hat, socks).",
					"Cooperates with dressing by extending arms/legs.",
					"Follows simple safety rules with reminders.",
					"Sleeps through the night consistently.",
				),
			},
		},
	},
	{
		AssessmentType: "Behavior-Therapy",
		Title:          "Behavior Therapy Assessment Questionnaire",
		Description:    "Comprehensive behavioral assessment covering functional behavior, intervention planning, school behavior, and therapy progress tracking.",
		Domains: []seedDomain{
			{
				Name: "Functional Behavior Assessment",
				Code: "FBA",
				Questions: behaviorQuestions(
					"Identifies the primary function of the target behavior (attention, escape, access, sensory).",
					"Demonstrates the target behavior during structured activities.",
					"Demonstrates the target behavior during unstructured activities.",
					"Engages in self-stimulatory behaviors.",
					"Exhibits aggressive behaviors towards others.",
					"Exhibits self-injurious behaviors.",
					"Engages in property destruction.",
					"Displays elopement or running away behaviors.",
				),
			},
			{
				Name: "Behavior Intervention Strategies",
				Code: "BIS",
				Questions: behaviorQuestions(
					"Responds positively to positive reinforcement strategies.",
					"Accepts redirection when engaging in maladaptive behavior.",
					"Uses replacement behaviors when prompted.",
					"Tolerates delay of reinforcement.",
					"Responds to visual supports and schedules.",
					"Follows a token economy or reward system.",
				),
			},
			{
				Name: "School Behavior Plan",
				Code: "SBP",
				Questions: behaviorQuestions(
					"Follows classroom rules with minimal prompting.",
					"Transitions between school activities appropriately.",
					"Interacts appropriately with peers during recess.",
					"Stays seated during instruction time.",
					"Completes assigned tasks within expected timeframe.",
					"Responds appropriately to teacher instructions.",
				),
			},
			{
				Name: "Therapy Progress Indicators",
				Code: "TPI",
				Questions: behaviorQuestions(
					"Shows reduction in frequency of target behavior over time.",
					"Demonstrates increased use of appropriate communication.",
					"Shows improvement in social interactions.",
					"Generalizes learned skills across settings.",
					"Maintains acquired skills over time.",
					"Parent/caregiver reports improvement at home.",
				),
			},
		},
	},
}

// SeedTemplates inserts the questionnaire templates on first boot. Templates
// already present are left untouched; they are immutable once seeded.
func SeedTemplates(db *gorm.DB) error {
	for _, st := range seedTemplates {
		var count int64
		if err := db.Model(&model.QuestionnaireTemplate{}).
			Where("assessment_type = ?", st.AssessmentType).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		template := &model.QuestionnaireTemplate{
			AssessmentType: st.AssessmentType,
			Title:          st.Title,
			Description:    st.Description,
		}
		for di, sd := range st.Domains {
			domain := model.QuestionnaireDomain{
				Name:      sd.Name,
				Code:      sd.Code,
				SortOrder: di,
			}
			for qi, sq := range sd.Questions {
				domain.Questions = append(domain.Questions, model.QuestionnaireQuestion{
					QuestionText: sq.Text,
					ResponseType: "dropdown",
					Options:      model.StringArray(sq.Options),
					ScoreType:    sq.ScoreType,
					SortOrder:    qi,
				})
			}
			template.Domains = append(template.Domains, domain)
		}

		if err := db.Create(template).Error; err != nil {
			return err
		}
		log.Printf("Seeded questionnaire template %s (%d domains)", st.AssessmentType, len(st.Domains))
	}
	return nil
}
