package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strings"
)

type ConfigurationEntry struct {
	Files    []string `json:"files"`
	Regex    string   `json:"regex"`
	Syslog   bool     `json:"syslog"`
	MailFrom string   `json:"from"`
	MailTo   []string `json:"to"`
}

func (c *ConfigurationEntry) Hash() string {
	data := fmt.Sprintf("%s%s", strings.Join(c.Files, ""), c.Regex)
	h := sha256.New()
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

// Validate checks an entry before any watch is set up. At least one
// notification channel must be enabled, and the mail addresses must come
// in pairs: a sender without recipients or the other way around is rejected.
func (c *ConfigurationEntry) Validate() error {
	if len(c.Regex) == 0 {
		return fmt.Errorf("no regex pattern specified")
	}
	if len(c.Files) == 0 {
		return fmt.Errorf("no files to watch specified")
	}
	if !c.Syslog && len(c.MailFrom) == 0 && len(c.MailTo) == 0 {
		return fmt.Errorf("no syslog or send mail arguments specified")
	}
	if len(c.MailFrom) > 0 && len(c.MailTo) == 0 {
		return fmt.Errorf("no mail send to address(es) specified")
	}
	if len(c.MailTo) > 0 && len(c.MailFrom) == 0 {
		return fmt.Errorf("no mail from address specified")
	}
	return nil
}

func loadConfiguration(path string) ([]ConfigurationEntry, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading configuration: %v", err)
	}

	var configuration []ConfigurationEntry
	if err := json.Unmarshal(data, &configuration); err != nil {
		return nil, fmt.Errorf("error parsing configuration: %v", err)
	}
	return configuration, nil
}
