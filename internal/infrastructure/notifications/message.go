// Package notifications turns lifecycle events into emails. Delivery is
// best effort: nothing here reports back to the lifecycle engine.
package notifications

import (
	"fmt"
	"strings"

	"mecanica_hub/internal/domain/entities"
)

// Message is one email ready to send.
type Message struct {
	To      []string
	Subject string
	Body    string
}

// BuildMessages returns the emails an event should produce. Recipients
// without an email address are skipped.
//
//   - created        => client
//   - assigned       => client and mechanic
//   - status_changed => the counterpart of whoever acted; both when an admin acted
//   - quote_updated  => client
func BuildMessages(ev entities.LifecycleEvent) []Message {
	var out []Message
	add := func(u *entities.User, subject, body string) {
		if u == nil || strings.TrimSpace(u.Email) == "" {
			return
		}
		out = append(out, Message{To: []string{u.Email}, Subject: subject, Body: greet(u) + body + footer(ev)})
	}
	client := &ev.Client

	switch ev.Type {
	case entities.EventCreated:
		add(client, subject(ev, "recibida"),
			fmt.Sprintf("Recibimos tu solicitud de %s para %s. Te avisaremos cuando un mecánico la acepte.\n", serviceName(ev), ev.Address))

	case entities.EventAssigned:
		add(client, subject(ev, "aceptada"),
			fmt.Sprintf("%s aceptó tu solicitud de %s.\n", mechanicName(ev), serviceName(ev)))
		add(ev.Mechanic, subject(ev, "asignada"),
			fmt.Sprintf("Tienes un nuevo trabajo de %s en %s.\n", serviceName(ev), ev.Address))

	case entities.EventStatusChanged:
		body := fmt.Sprintf("La solicitud pasó de %s a %s.\n", statusLabel(ev.From), statusLabel(ev.To))
		subj := subject(ev, strings.ToLower(statusLabel(ev.To)))
		switch ev.Role {
		case entities.RoleMechanic:
			add(client, subj, body)
		case entities.RoleClient:
			add(ev.Mechanic, subj, body)
		default:
			add(client, subj, body)
			add(ev.Mechanic, subj, body)
		}

	case entities.EventQuoteUpdated:
		body := "El mecánico actualizó la cotización.\n"
		if ev.Price != nil {
			body += fmt.Sprintf("Precio: $%.2f\n", *ev.Price)
		}
		if ev.Notes != "" {
			body += "Notas: " + ev.Notes + "\n"
		}
		add(client, subject(ev, "cotización actualizada"), body)
	}
	return out
}

func subject(ev entities.LifecycleEvent, what string) string {
	return fmt.Sprintf("Solicitud %s %s", ev.CaseNumber, what)
}

func greet(u *entities.User) string {
	if u.Name == "" {
		return "Hola,\n\n"
	}
	return "Hola " + u.Name + ",\n\n"
}

func footer(ev entities.LifecycleEvent) string {
	return fmt.Sprintf("\nNúmero de caso: %s\n", ev.CaseNumber)
}

func serviceName(ev entities.LifecycleEvent) string {
	if ev.ServiceType.Name != "" {
		return ev.ServiceType.Name
	}
	return "servicio"
}

func mechanicName(ev entities.LifecycleEvent) string {
	if ev.Mechanic != nil && ev.Mechanic.Name != "" {
		return ev.Mechanic.Name
	}
	return "Un mecánico"
}

var statusLabels = map[entities.ServiceStatus]string{
	entities.StatusPendiente:  "Pendiente",
	entities.StatusAceptado:   "Aceptado",
	entities.StatusEnCamino:   "En camino",
	entities.StatusEnProceso:  "En proceso",
	entities.StatusFinalizado: "Finalizado",
	entities.StatusCancelado:  "Cancelado",
}

func statusLabel(s entities.ServiceStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}
