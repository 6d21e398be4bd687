/*
Package realm provides the realm implementations shipped with Palisade.

A realm resolves authentication tokens to accounts. The security manager
consults realms in ascending priority order; all realms here implement
security.Ordered.

  - StaticRealm: accounts declared in configuration.
  - EnvRealm: credentials read from environment variables.
  - FileRealm: one YAML account file per principal, with optional
    fsnotify-based auto-reload.
  - GitStore: keeps a local checkout of a git repository of account
    files, used as the backing directory of a FileRealm.

FileRealm implements Refreshable; a Refresher reloads refreshable realms
on a cron schedule for credential rotation without restart.
*/
package realm
