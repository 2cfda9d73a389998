package store

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Taxonomie des erreurs du magasin. Les handlers traduisent vers les codes
// HTTP ; le détail reste côté serveur pour le diagnostic.
var (
	// ErrNotFound : ressource absente ou appartenant à un autre utilisateur
	ErrNotFound = errors.New("ressource introuvable")

	// ErrDuplicateUser : nom d'utilisateur déjà pris
	ErrDuplicateUser = errors.New("nom d'utilisateur déjà utilisé")

	// ErrOwnProduct : tentative d'ajouter son propre article au panier
	ErrOwnProduct = errors.New("impossible d'acheter son propre article")

	// ErrInvalidQuantity : quantité < 1
	ErrInvalidQuantity = errors.New("quantité invalide")

	// ErrInvalidPurchase : liste d'articles vide ou malformée
	ErrInvalidPurchase = errors.New("demande d'achat invalide")

	// ErrBuyerNotFound : l'identité de l'acheteur n'existe plus
	ErrBuyerNotFound = errors.New("acheteur introuvable")

	// ErrProductNotFound : au moins un article référencé n'existe pas
	ErrProductNotFound = errors.New("article introuvable")

	// ErrProductSold : l'article a déjà été vendu (perdant de la course au
	// premier committeur)
	ErrProductSold = errors.New("article déjà vendu")
)

// isDuplicateKey reconnaît une violation de contrainte d'unicité, pour MySQL
// (erreur 1062) comme pour SQLite
func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
