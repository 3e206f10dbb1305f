package utilbot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kalexmills/simple-utils/src/utilbot/db"
	"github.com/kalexmills/simple-utils/src/utils"
)

type Operation uint8

const (
	OpReverse Operation = iota
	OpCountWords
	OpCelsiusToFahrenheit
	OpFeatureOn
	OpFeatureOff
	OpFeatureList
	OpStats
	OpHelp
)

// UtilityOps are the operations anyone may send, in the order stats are reported.
var UtilityOps = []Operation{OpReverse, OpCountWords, OpCelsiusToFahrenheit}

// Name is the keyword used to send the command, and the name it's recorded under in the history table.
func (op Operation) Name() string {
	switch op {
	case OpReverse:
		return "reverse"
	case OpCountWords:
		return "words"
	case OpCelsiusToFahrenheit:
		return "c2f"
	case OpFeatureOn:
		return "feature on"
	case OpFeatureOff:
		return "feature off"
	case OpFeatureList:
		return "feature list"
	case OpStats:
		return "stats"
	case OpHelp:
		return "help"
	}
	return fmt.Sprintf("Operation(%d)", op)
}

// Feature is the flag that must be enabled for op to be answered; zero for operations that are always on.
func (op Operation) Feature() db.ConfigFlag {
	switch op {
	case OpReverse:
		return db.ConfigReverse
	case OpCountWords:
		return db.ConfigCountWords
	case OpCelsiusToFahrenheit:
		return db.ConfigConvertTemperature
	}
	return 0
}

func (op Operation) IsAdmin() bool {
	return op == OpFeatureOn || op == OpFeatureOff || op == OpFeatureList
}

type Command struct {
	Operation Operation
	Input     string // raw text following a utility keyword
	Celsius   float64
	Target    string // "global" or a channel ID
	Features  db.ConfigFlag
}

func (c Command) MentionTarget() string {
	if c.Target == "global" {
		return "global"
	}
	return fmt.Sprintf("<#%s>", c.Target)
}

var errEmptyCommand = errors.New("expected a valid command; send `help` for help")

// ParseCommand parses message content with the bot prefix already removed.
func ParseCommand(content string) (Command, error) {
	keyword, rest := splitKeyword(content)
	switch keyword {
	case "":
		return Command{}, errEmptyCommand
	case "reverse":
		return Command{Operation: OpReverse, Input: rest}, nil
	case "words":
		return Command{Operation: OpCountWords, Input: rest}, nil
	case "c2f":
		c, err := utils.ParseCelsius(rest)
		if err != nil {
			return Command{}, fmt.Errorf("expected a number of degrees Celsius after `c2f`: %w", err)
		}
		return Command{Operation: OpCelsiusToFahrenheit, Input: strings.TrimSpace(rest), Celsius: c}, nil
	case "stats":
		return Command{Operation: OpStats}, nil
	case "help":
		return Command{Operation: OpHelp}, nil
	case "feature":
		return parseFeatureCommand(strings.Fields(rest))
	}
	return Command{}, fmt.Errorf("could not understand command %s", keyword)
}

// splitKeyword splits off the first word. Exactly one whitespace rune after the keyword is consumed; the rest
// of the text is kept verbatim.
func splitKeyword(content string) (string, string) {
	trimmed := strings.TrimLeftFunc(content, unicode.IsSpace)
	idx := strings.IndexFunc(trimmed, unicode.IsSpace)
	if idx < 0 {
		return trimmed, ""
	}
	_, size := utf8.DecodeRuneInString(trimmed[idx:])
	return trimmed[:idx], trimmed[idx+size:]
}

func parseFeatureCommand(tokens []string) (Command, error) {
	if len(tokens) < 1 {
		return Command{}, errors.New("expected `on`, `off` or `list` after `feature`; send `help` for help")
	}
	result := Command{}
	switch tokens[0] {
	case "on":
		result.Operation = OpFeatureOn
		if len(tokens) < 3 {
			return Command{}, errors.New("expected a target and list of features after `feature on`; send `help` for help")
		}
	case "off":
		result.Operation = OpFeatureOff
		if len(tokens) < 3 {
			return Command{}, errors.New("expected a target and list of features after `feature off`; send `help` for help")
		}
	case "list":
		result.Operation = OpFeatureList
		if len(tokens) < 2 {
			return Command{}, errors.New("expected a target after `feature list`; send `help` for help")
		}
	default:
		return Command{}, fmt.Errorf("could not understand command feature %s", tokens[0])
	}

	target, err := parseTarget(tokens[1])
	if err != nil {
		return Command{}, err
	}
	result.Target = target

	result.Features, err = parseFeatures(tokens[2:])
	if err != nil {
		return Command{}, err
	}
	return result, nil
}

func parseTarget(target string) (string, error) {
	if target == "global" {
		return target, nil
	}
	if strings.HasPrefix(target, "<#") && strings.HasSuffix(target, ">") {
		id, err := strconv.Atoi(target[2 : len(target)-1])
		if err != nil {
			return "", fmt.Errorf("couldn't parse target '%s' as valid channel mention", target)
		}
		return strconv.Itoa(id), nil
	}
	return "", fmt.Errorf("couldn't parse target '%s' as valid target", target)
}

func parseFeatures(features []string) (db.ConfigFlag, error) {
	var result db.ConfigFlag
outer:
	for _, feature := range features {
		for _, f := range db.Features {
			if f.Name == feature {
				result |= f.Flag
				continue outer
			}
		}
		return 0, fmt.Errorf("could not understand '%s' as a valid feature; send `help` for help", feature)
	}
	return result, nil
}

// Respond computes the reply for one of the utility operations.
func Respond(cmd Command) (string, error) {
	switch cmd.Operation {
	case OpReverse:
		reversed := utils.Reverse(cmd.Input)
		if strings.TrimSpace(reversed) == "" {
			return "(nothing to reverse)", nil
		}
		return reversed, nil
	case OpCountWords:
		n := utils.CountWords(cmd.Input)
		if n == 1 {
			return "1 word", nil
		}
		return fmt.Sprintf("%d words", n), nil
	case OpCelsiusToFahrenheit:
		f := utils.CelsiusToFahrenheit(cmd.Celsius)
		return fmt.Sprintf("%s°C is %s°F", formatDegrees(cmd.Celsius), formatDegrees(f)), nil
	}
	return "", fmt.Errorf("%s is not a utility command", cmd.Operation.Name())
}

// formatDegrees drops the float noise, so 37°C reads as 98.6°F rather than 98.60000000000001°F.
func formatDegrees(f float64) string {
	return strconv.FormatFloat(f, 'g', 10, 64)
}

var Help = `Commands:
  ~~~{prefix} reverse [text]~~~ - reverses the text, character by character
  ~~~{prefix} words [text]~~~ - counts the whitespace-separated words in the text
  ~~~{prefix} c2f [degrees]~~~ - converts degrees Celsius to Fahrenheit
  ~~~{prefix} stats~~~ - shows how often each command has been used in this guild
  ~~~{prefix} help~~~ - shows this message

Admin commands must be sent in the guild they are meant to apply to.
  ~~~{prefix} feature on [target] [feature feature...]~~~
  ~~~{prefix} feature off [target] [feature feature...]~~~
  ~~~{prefix} feature list [target]~~~

~~~[target]~~~ can be either a channel mention or ~~~global~~~ to change features for every channel in the guild.
~~~[feature feature...]~~~ is a space-separated list of features from the below list.

   - ~~~Reverse~~~ - answers ~~~reverse~~~
   - ~~~CountWords~~~ - answers ~~~words~~~
   - ~~~ConvertTemperature~~~ - answers ~~~c2f~~~
   - ~~~RecordHistory~~~ - records answered commands for ~~~stats~~~
`

func helpText(prefix string) string {
	return strings.ReplaceAll(strings.ReplaceAll(Help, "~~~", "`"), "{prefix}", prefix)
}
