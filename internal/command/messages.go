package command

import (
	"fmt"
	"strings"

	"lunchbot/internal/types"
)

const (
	helpMessage = "Usage:\n " +
		"`adaug NUME` - adaugare restaurant\n" +
		"`sterg NUME` - stergere restaurant\n" +
		"`lista` - lista restaurantelor cu ponderi\n" +
		"`ce mancam azi` - alegere aleatorie a unui restaturant\n" +
		"`am mancat la NUME` - crestere ponderei pentru un restaurant"

	greetingMessage     = "Haideti sa mancam ceva!"
	emptyRegistryReply  = `Nu cunosc nici un restaurant. Adauga unu nou cu comanda "adaug".`
	chooseAckReply      = "Urmeaza o alegere aleatorie din restaurante existente..."
	chooseAnnounceReply = "Astazi comandam de la..."
	persistFailedReply  = "Nu am putut salva modificarea, incearca din nou."
)

func addedReply(name string) string {
	return fmt.Sprintf("Restaurantul %s a fost adaugat.", name)
}

func alreadyExistsReply(name string) string {
	return fmt.Sprintf("Restaurantul %s exista deja.", name)
}

func removedReply(name string) string {
	return fmt.Sprintf("Restaurantul %s a fost sters.", name)
}

func notFoundReply(name string) string {
	return fmt.Sprintf("Restaurantul %s nu era adaugat.", name)
}

func incrementedReply(name string) string {
	return fmt.Sprintf("Sansele restaurantului %s sa fie ales data urmatoare au crescut.", name)
}

func chosenReply(name string) string {
	return name + " :tada:"
}

func listReply(records []types.Restaurant) string {
	var b strings.Builder
	for _, r := range records {
		fmt.Fprintf(&b, "%s: %d\n", r.Name, r.Weight)
	}
	return b.String()
}
