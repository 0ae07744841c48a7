package main

import (
	"errors"
	"os"
	"strings"

	automaton "github.com/geange/powerset"
	"github.com/manifoldco/promptui"
)

// promptInput asks for the five fields of an NFA, offering defaults as the
// initial values. Transition rules are read one per prompt until a blank line.
func promptInput(defaults automaton.TextInput) (automaton.TextInput, error) {
	var (
		in  automaton.TextInput
		err error
	)

	if in.States, err = promptString("NFA states (comma separated)", defaults.States, true); err != nil {
		return in, err
	}
	if in.Symbols, err = promptString("Input symbols (comma separated)", defaults.Symbols, true); err != nil {
		return in, err
	}
	if in.Start, err = promptString("Start state", defaults.Start, true); err != nil {
		return in, err
	}
	if in.Accept, err = promptString("Accept states (comma separated)", defaults.Accept, false); err != nil {
		return in, err
	}

	var rules []string
	for {
		rule, err := promptString("Transition (q0,a->q0 q1; blank to finish)", "", false)
		if err != nil {
			return in, err
		}
		if strings.TrimSpace(rule) == "" {
			break
		}
		rules = append(rules, rule)
	}
	if len(rules) == 0 {
		rules = strings.Split(defaults.Transitions, "\n")
	}
	in.Transitions = strings.Join(rules, "\n")

	return in, nil
}

func promptString(label, def string, required bool) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
	}
	if required {
		prompt.Validate = func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("you must enter something")
			}
			return nil
		}
	}

	return prompt.Run()
}
