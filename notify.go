package main

import (
	"fmt"
	"net/smtp"
	"os/exec"
	"strings"
)

const smtpAddr = "localhost:25"

// mailSender and commandRunner are swapped for fakes in tests so no mail
// server or logger binary is needed.
type mailSender func(addr, from string, to []string, msg []byte) error

type commandRunner func(name string, args ...string) error

func sendSMTP(addr, from string, to []string, msg []byte) error {
	return smtp.SendMail(addr, nil, from, to, msg)
}

func runCommand(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %v: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

type notifier struct {
	addr string
	send mailSender
	run  commandRunner
}

func newNotifier() *notifier {
	return &notifier{addr: smtpAddr, send: sendSMTP, run: runCommand}
}

// mail delivers the match report over plain SMTP. Filewatcher assumes the
// mail server is listening on localhost:25 without any authentication.
func (n *notifier) mail(from string, to []string, pattern, file, matches string) error {
	subject := fmt.Sprintf("Filewatcher: Regex pattern %s matched in %s", pattern, file)
	body := fmt.Sprintf("Regex: %s\nFile: %s\n\n%s\n", pattern, file, matches)

	message := fmt.Sprintf("From: %s\nTo: %s\nSubject: %s\n\nMail sent by filewatcher.\n\n%s\n",
		from, strings.Join(to, ", "), subject, body)

	return n.send(n.addr, from, to, []byte(message))
}

// syslog hands the match report to the external logger command.
func (n *notifier) syslog(file, matches string) error {
	message := fmt.Sprintf("filewatcher: file: %s:: %s", file, matches)
	return n.run("logger", "--priority", "local0.info", message)
}
